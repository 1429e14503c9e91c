package dto

import "github.com/ikkim/gestion-empresas-backend/internal/app/model"

// SedeDTO carries only the owning company's id, never the company itself.
type SedeDTO struct {
	ID                      uint     `json:"id"`
	Nombre                  string   `json:"nombre" binding:"required,max=150"`
	Direccion               string   `json:"direccion" binding:"required,max=255"`
	Ciudad                  string   `json:"ciudad" binding:"required,max=100"`
	Provincia               string   `json:"provincia" binding:"max=100"`
	CodigoPostal            string   `json:"codigoPostal" binding:"max=10"`
	Pais                    string   `json:"pais" binding:"max=100"`
	Telefono                string   `json:"telefono" binding:"max=20"`
	Email                   string   `json:"email" binding:"omitempty,email,max=100"`
	EsPrincipal             *bool    `json:"esPrincipal"`
	CapacidadAlmacenamiento *float64 `json:"capacidadAlmacenamiento" binding:"omitempty,gte=0"`
	HorarioRecepcion        string   `json:"horarioRecepcion" binding:"max=100"`
	EmpresaID               *uint    `json:"empresaId" binding:"required"`
}

// IsPrincipal treats an absent flag as false.
func (s *SedeDTO) IsPrincipal() bool {
	return s.EsPrincipal != nil && *s.EsPrincipal
}

func ToSedeDTO(s *model.Sede) SedeDTO {
	principal := s.EsPrincipal
	empresaID := s.EmpresaID

	return SedeDTO{
		ID:                      s.ID,
		Nombre:                  s.Nombre,
		Direccion:               s.Direccion,
		Ciudad:                  s.Ciudad,
		Provincia:               s.Provincia,
		CodigoPostal:            s.CodigoPostal,
		Pais:                    s.Pais,
		Telefono:                s.Telefono,
		Email:                   s.Email,
		EsPrincipal:             &principal,
		CapacidadAlmacenamiento: s.CapacidadAlmacenamiento,
		HorarioRecepcion:        s.HorarioRecepcion,
		EmpresaID:               &empresaID,
	}
}

func ToSedeDTOList(sedes []model.Sede) []SedeDTO {
	out := make([]SedeDTO, 0, len(sedes))
	for i := range sedes {
		out = append(out, ToSedeDTO(&sedes[i]))
	}
	return out
}

// ToSedeModel builds a new, unsaved site without an owner; the caller resolves
// EmpresaID against storage before linking it.
func ToSedeModel(in *SedeDTO) *model.Sede {
	s := &model.Sede{}
	copySedeFields(in, s)
	return s
}

// ApplySedeUpdate copies the mutable fields onto an existing site, keeping ID and EmpresaID.
func ApplySedeUpdate(in *SedeDTO, s *model.Sede) {
	copySedeFields(in, s)
}

func copySedeFields(in *SedeDTO, s *model.Sede) {
	s.Nombre = in.Nombre
	s.Direccion = in.Direccion
	s.Ciudad = in.Ciudad
	s.Provincia = in.Provincia
	s.CodigoPostal = in.CodigoPostal
	s.Pais = in.Pais
	if s.Pais == "" {
		s.Pais = model.DefaultPais
	}
	s.Telefono = in.Telefono
	s.Email = in.Email
	s.EsPrincipal = in.IsPrincipal()
	s.CapacidadAlmacenamiento = in.CapacidadAlmacenamiento
	s.HorarioRecepcion = in.HorarioRecepcion
}
