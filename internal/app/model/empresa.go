package model

import (
	"time"

	"gorm.io/datatypes"
)

type Empresa struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	RazonSocial      string         `gorm:"size:200;not null" json:"razon_social"`
	CIF              string         `gorm:"column:cif;size:20;not null;uniqueIndex" json:"cif"`
	Email            string         `gorm:"size:100" json:"email"`
	Telefono         string         `gorm:"size:20" json:"telefono"`
	Sector           string         `gorm:"size:100;index" json:"sector"`
	FechaAlta        datatypes.Date `gorm:"not null" json:"fecha_alta"`
	Activo           bool           `gorm:"not null;index" json:"activo"`
	FacturacionAnual *float64       `json:"facturacion_anual"`
	NumeroEmpleados  *int           `json:"numero_empleados"`

	// Sedes is the derived side of the relation; Sede only stores EmpresaID.
	Sedes []Sede `gorm:"foreignKey:EmpresaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sedes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Empresa) TableName() string {
	return "empresas"
}

// Today returns the current date with the time component truncated.
func Today() datatypes.Date {
	y, m, d := time.Now().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
