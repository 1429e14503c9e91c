package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	EmpresasSheet = "Empresas"
	SedesSheet    = "Sedes"
)

// Column order of the Empresas sheet. The first row is a header and is skipped.
const (
	colEmpresaRazonSocial = iota
	colEmpresaCIF
	colEmpresaEmail
	colEmpresaTelefono
	colEmpresaSector
	colEmpresaFacturacion
	colEmpresaEmpleados
)

// Column order of the Sedes sheet. Sites reference their company by CIF.
const (
	colSedeCIF = iota
	colSedeNombre
	colSedeDireccion
	colSedeCiudad
	colSedeProvincia
	colSedeCodigoPostal
	colSedePais
	colSedeTelefono
	colSedeEmail
	colSedePrincipal
	colSedeCapacidad
	colSedeHorario
)

// RowError reports a rejected row. Row is 1-based as shown by spreadsheet tools.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s fila %d: %v", e.Sheet, e.Row, e.Err)
}

type Result struct {
	EmpresasCreadas int
	SedesCreadas    int
	Errores         []RowError
}

// Importer loads companies and their sites from an XLSX workbook through the
// services, so every business rule applies to imported rows as well.
type Importer struct {
	empresas service.EmpresaService
	sedes    service.SedeService
}

func New(empresas service.EmpresaService, sedes service.SedeService) *Importer {
	return &Importer{empresas: empresas, sedes: sedes}
}

func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return i.importWorkbook(ctx, f)
}

func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX: %w", err)
	}
	defer f.Close()

	return i.importWorkbook(ctx, f)
}

func (i *Importer) importWorkbook(ctx context.Context, f *excelize.File) (*Result, error) {
	if idx, err := f.GetSheetIndex(EmpresasSheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", EmpresasSheet)
	}

	result := &Result{}

	rows, err := f.GetRows(EmpresasSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", EmpresasSheet, err)
	}
	for n, row := range rows {
		if n == 0 || blank(row) {
			continue
		}
		if err := i.importEmpresa(ctx, row); err != nil {
			result.Errores = append(result.Errores, RowError{Sheet: EmpresasSheet, Row: n + 1, Err: err})
			continue
		}
		result.EmpresasCreadas++
	}

	// The Sedes sheet is optional.
	if idx, err := f.GetSheetIndex(SedesSheet); err == nil && idx >= 0 {
		rows, err := f.GetRows(SedesSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows of %q: %w", SedesSheet, err)
		}
		for n, row := range rows {
			if n == 0 || blank(row) {
				continue
			}
			if err := i.importSede(ctx, row); err != nil {
				result.Errores = append(result.Errores, RowError{Sheet: SedesSheet, Row: n + 1, Err: err})
				continue
			}
			result.SedesCreadas++
		}
	}

	logger.Info("XLSX import finished", map[string]interface{}{
		"empresas_creadas": result.EmpresasCreadas,
		"sedes_creadas":    result.SedesCreadas,
		"errores":          len(result.Errores),
	})
	return result, nil
}

func (i *Importer) importEmpresa(ctx context.Context, row []string) error {
	in := dto.EmpresaDTO{
		RazonSocial: cell(row, colEmpresaRazonSocial),
		CIF:         cell(row, colEmpresaCIF),
		Email:       cell(row, colEmpresaEmail),
		Telefono:    cell(row, colEmpresaTelefono),
		Sector:      cell(row, colEmpresaSector),
	}

	var err error
	if in.FacturacionAnual, err = floatCell(row, colEmpresaFacturacion); err != nil {
		return err
	}
	if in.NumeroEmpleados, err = intCell(row, colEmpresaEmpleados); err != nil {
		return err
	}

	if err := binding.Validator.ValidateStruct(&in); err != nil {
		return err
	}
	_, err = i.empresas.Create(ctx, &in)
	return err
}

func (i *Importer) importSede(ctx context.Context, row []string) error {
	cif := cell(row, colSedeCIF)
	empresa, found, err := i.empresas.GetByCIF(ctx, cif)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no existe ninguna empresa con CIF %q: %w", cif, service.ErrEmpresaNotFound)
	}

	empresaID := empresa.ID
	principal := parseBool(cell(row, colSedePrincipal))
	in := dto.SedeDTO{
		Nombre:           cell(row, colSedeNombre),
		Direccion:        cell(row, colSedeDireccion),
		Ciudad:           cell(row, colSedeCiudad),
		Provincia:        cell(row, colSedeProvincia),
		CodigoPostal:     cell(row, colSedeCodigoPostal),
		Pais:             cell(row, colSedePais),
		Telefono:         cell(row, colSedeTelefono),
		Email:            cell(row, colSedeEmail),
		EsPrincipal:      &principal,
		HorarioRecepcion: cell(row, colSedeHorario),
		EmpresaID:        &empresaID,
	}
	if in.CapacidadAlmacenamiento, err = floatCell(row, colSedeCapacidad); err != nil {
		return err
	}

	if err := binding.Validator.ValidateStruct(&in); err != nil {
		return err
	}
	_, err = i.sedes.Create(ctx, &in)
	return err
}

// cell returns a trimmed value; GetRows drops trailing empty cells, so short rows are normal.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func floatCell(row []string, idx int) (*float64, error) {
	raw := cell(row, idx)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("columna %d: %q no es un número", idx+1, raw)
	}
	return &v, nil
}

func intCell(row []string, idx int) (*int, error) {
	raw := cell(row, idx)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("columna %d: %q no es un entero", idx+1, raw)
	}
	return &v, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "si", "sí", "s", "x", "yes":
		return true
	}
	return false
}
