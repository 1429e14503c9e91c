package model

import "time"

// DefaultPais is applied when a site is created without a country.
const DefaultPais = "España"

type Sede struct {
	ID                      uint     `gorm:"primaryKey" json:"id"`
	Nombre                  string   `gorm:"size:150;not null" json:"nombre"`
	Direccion               string   `gorm:"size:255;not null" json:"direccion"`
	Ciudad                  string   `gorm:"size:100;not null;index" json:"ciudad"`
	Provincia               string   `gorm:"size:100;index" json:"provincia"`
	CodigoPostal            string   `gorm:"size:10" json:"codigo_postal"`
	Pais                    string   `gorm:"size:100" json:"pais"`
	Telefono                string   `gorm:"size:20" json:"telefono"`
	Email                   string   `gorm:"size:100" json:"email"`
	EsPrincipal             bool     `gorm:"not null" json:"es_principal"`
	CapacidadAlmacenamiento *float64 `json:"capacidad_almacenamiento"` // m²
	HorarioRecepcion        string   `gorm:"size:100" json:"horario_recepcion"`

	// At most one principal site per company: unique over empresa_id among principal rows.
	EmpresaID uint `gorm:"not null;index;uniqueIndex:idx_sedes_empresa_principal,where:es_principal" json:"empresa_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Sede) TableName() string {
	return "sedes"
}
