package dto

import "github.com/ikkim/gestion-empresas-backend/internal/app/model"

// EmpresaDTO is the external shape of a company. Sedes is output only.
type EmpresaDTO struct {
	ID               uint       `json:"id"`
	RazonSocial      string     `json:"razonSocial" binding:"required,max=200"`
	CIF              string     `json:"cif" binding:"required,max=20"`
	Email            string     `json:"email" binding:"omitempty,email,max=100"`
	Telefono         string     `json:"telefono" binding:"max=20"`
	Sector           string     `json:"sector" binding:"max=100"`
	FechaAlta        *LocalDate `json:"fechaAlta"`
	Activo           *bool      `json:"activo"`
	FacturacionAnual *float64   `json:"facturacionAnual" binding:"omitempty,gte=0"`
	NumeroEmpleados  *int       `json:"numeroEmpleados" binding:"omitempty,gte=0"`
	Sedes            []SedeDTO  `json:"sedes"`
}

// ToEmpresaDTO maps a company and whatever sedes were loaded with it.
func ToEmpresaDTO(e *model.Empresa) EmpresaDTO {
	fecha := NewLocalDate(e.FechaAlta)
	activo := e.Activo

	return EmpresaDTO{
		ID:               e.ID,
		RazonSocial:      e.RazonSocial,
		CIF:              e.CIF,
		Email:            e.Email,
		Telefono:         e.Telefono,
		Sector:           e.Sector,
		FechaAlta:        &fecha,
		Activo:           &activo,
		FacturacionAnual: e.FacturacionAnual,
		NumeroEmpleados:  e.NumeroEmpleados,
		Sedes:            ToSedeDTOList(e.Sedes),
	}
}

func ToEmpresaDTOList(empresas []model.Empresa) []EmpresaDTO {
	out := make([]EmpresaDTO, 0, len(empresas))
	for i := range empresas {
		out = append(out, ToEmpresaDTO(&empresas[i]))
	}
	return out
}

// ToEmpresaModel builds a new, unsaved company. ID and Sedes from the input are ignored;
// sites are attached only through SedeService.
func ToEmpresaModel(in *EmpresaDTO) *model.Empresa {
	e := &model.Empresa{
		RazonSocial:      in.RazonSocial,
		CIF:              in.CIF,
		Email:            in.Email,
		Telefono:         in.Telefono,
		Sector:           in.Sector,
		Activo:           true,
		FacturacionAnual: in.FacturacionAnual,
		NumeroEmpleados:  in.NumeroEmpleados,
	}
	if in.FechaAlta != nil {
		e.FechaAlta = in.FechaAlta.Date()
	} else {
		e.FechaAlta = model.Today()
	}
	return e
}

// ApplyEmpresaUpdate copies the mutable fields onto an existing company.
// ID, FechaAlta and Sedes are left untouched; a nil Activo keeps the stored flag.
func ApplyEmpresaUpdate(in *EmpresaDTO, e *model.Empresa) {
	e.RazonSocial = in.RazonSocial
	e.CIF = in.CIF
	e.Email = in.Email
	e.Telefono = in.Telefono
	e.Sector = in.Sector
	if in.Activo != nil {
		e.Activo = *in.Activo
	}
	e.FacturacionAnual = in.FacturacionAnual
	e.NumeroEmpleados = in.NumeroEmpleados
}
