package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/repository"
	"github.com/ikkim/gestion-empresas-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (EmpresaService, SedeService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	tx := repository.NewTxRunner(testDB)
	return NewEmpresaService(tx), NewSedeService(tx), testDB
}

func empresaInput(razonSocial, cif string) *dto.EmpresaDTO {
	return &dto.EmpresaDTO{
		RazonSocial: razonSocial,
		CIF:         cif,
		Sector:      "Logistica",
	}
}

func createEmpresa(t *testing.T, svc EmpresaService, razonSocial, cif string) dto.EmpresaDTO {
	out, err := svc.Create(context.Background(), empresaInput(razonSocial, cif))
	require.NoError(t, err)
	return out
}

func boolPtr(v bool) *bool {
	return &v
}

func TestEmpresaService_Create(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	created, err := empresaService.Create(ctx, empresaInput("Acme SA", "B12345678"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Activo)
	assert.True(t, *created.Activo)
	require.NotNil(t, created.FechaAlta)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.FechaAlta.String())

	fetched, found, err := empresaService.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "B12345678", fetched.CIF)
	assert.True(t, *fetched.Activo)
	assert.Empty(t, fetched.Sedes)
}

func TestEmpresaService_Create_IgnoresInputIDAndActivo(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)

	in := empresaInput("Acme SA", "B12345678")
	in.ID = 77
	in.Activo = boolPtr(false)
	fecha := dto.LocalDate(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	in.FechaAlta = &fecha

	created, err := empresaService.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, uint(77), created.ID)
	assert.True(t, *created.Activo)
	assert.Equal(t, "2020-03-01", created.FechaAlta.String())
}

func TestEmpresaService_Create_DuplicateCIF(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)

	first := createEmpresa(t, empresaService, "Acme SA", "B12345678")

	_, err := empresaService.Create(context.Background(), empresaInput("Otra SA", "B12345678"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCIFDuplicado))
	assert.True(t, errors.Is(err, ErrValidation))

	byCIF, found, err := empresaService.GetByCIF(context.Background(), "B12345678")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first.ID, byCIF.ID)
	assert.Equal(t, "Acme SA", byCIF.RazonSocial)
}

func TestEmpresaService_GetByID_NotFound(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)

	_, found, err := empresaService.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = empresaService.GetByCIF(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmpresaService_Update(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	created := createEmpresa(t, empresaService, "Acme SA", "B12345678")

	facturacion := 1500.5
	empleados := 12
	otherDate := dto.LocalDate(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	in := &dto.EmpresaDTO{
		RazonSocial:      "Acme Renombrada SA",
		CIF:              "B99999999",
		Email:            "info@acme.es",
		Telefono:         "910000000",
		Sector:           "Textil",
		FechaAlta:        &otherDate,
		Activo:           boolPtr(false),
		FacturacionAnual: &facturacion,
		NumeroEmpleados:  &empleados,
	}

	updated, err := empresaService.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Acme Renombrada SA", updated.RazonSocial)
	assert.Equal(t, "B99999999", updated.CIF)
	assert.Equal(t, "info@acme.es", updated.Email)
	assert.False(t, *updated.Activo)
	assert.Equal(t, 12, *updated.NumeroEmpleados)
	// fechaAlta is never changed by an update
	assert.Equal(t, created.FechaAlta.String(), updated.FechaAlta.String())
}

func TestEmpresaService_Update_KeepsActivoWhenAbsent(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	created := createEmpresa(t, empresaService, "Acme SA", "B12345678")
	require.NoError(t, empresaService.Deactivate(ctx, created.ID))

	updated, err := empresaService.Update(ctx, created.ID, empresaInput("Acme SA", "B12345678"))
	require.NoError(t, err)
	assert.False(t, *updated.Activo)
}

func TestEmpresaService_Update_Errors(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	createEmpresa(t, empresaService, "Acme SA", "B12345678")
	beta := createEmpresa(t, empresaService, "Beta SL", "B87654321")

	_, err := empresaService.Update(ctx, 999, empresaInput("X", "X1"))
	assert.True(t, errors.Is(err, ErrEmpresaNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = empresaService.Update(ctx, beta.ID, empresaInput("Beta SL", "B12345678"))
	assert.True(t, errors.Is(err, ErrCIFDuplicado))

	// Keeping its own CIF is not a conflict
	_, err = empresaService.Update(ctx, beta.ID, empresaInput("Beta Renombrada", "B87654321"))
	assert.NoError(t, err)

	unchanged, _, err := empresaService.GetByCIF(ctx, "B87654321")
	require.NoError(t, err)
	assert.Equal(t, "Beta Renombrada", unchanged.RazonSocial)
}

func TestEmpresaService_Delete_CascadesSedes(t *testing.T) {
	empresaService, sedeService, _ := setupServiceTest(t)
	ctx := context.Background()

	acme := createEmpresa(t, empresaService, "Acme SA", "B12345678")
	for i, nombre := range []string{"HQ", "Almacén", "Tienda"} {
		_, err := sedeService.Create(ctx, sedeInput(acme.ID, nombre, "Madrid", i == 0))
		require.NoError(t, err)
	}

	require.NoError(t, empresaService.Delete(ctx, acme.ID))

	sedes, err := sedeService.GetByEmpresa(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, sedes)

	all, err := sedeService.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, found, err := empresaService.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmpresaService_Delete_NotFound(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)

	err := empresaService.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrEmpresaNotFound))
}

func TestEmpresaService_DeactivateActivate_RoundTrip(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	created := createEmpresa(t, empresaService, "Acme SA", "B12345678")

	require.NoError(t, empresaService.Deactivate(ctx, created.ID))
	// Already inactive is a no-op
	require.NoError(t, empresaService.Deactivate(ctx, created.ID))

	inactive, _, err := empresaService.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, *inactive.Activo)

	require.NoError(t, empresaService.Activate(ctx, created.ID))

	restored, _, err := empresaService.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, *restored.Activo)
	assert.Equal(t, created.RazonSocial, restored.RazonSocial)
	assert.Equal(t, created.CIF, restored.CIF)
	assert.Equal(t, created.Sector, restored.Sector)
	assert.Equal(t, created.FechaAlta.String(), restored.FechaAlta.String())

	assert.True(t, errors.Is(empresaService.Activate(ctx, 999), ErrEmpresaNotFound))
	assert.True(t, errors.Is(empresaService.Deactivate(ctx, 999), ErrEmpresaNotFound))
}

func TestEmpresaService_Queries(t *testing.T) {
	empresaService, _, _ := setupServiceTest(t)
	ctx := context.Background()

	acme := createEmpresa(t, empresaService, "Acme SA", "B00000001")
	createEmpresa(t, empresaService, "Beta SL", "B00000002")

	textil := empresaInput("Gamma Textil", "B00000003")
	textil.Sector = "Textil"
	facturacion := 1_000_000.0
	textil.FacturacionAnual = &facturacion
	_, err := empresaService.Create(ctx, textil)
	require.NoError(t, err)

	require.NoError(t, empresaService.Deactivate(ctx, acme.ID))

	all, err := empresaService.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	activas, err := empresaService.GetActivas(ctx)
	require.NoError(t, err)
	assert.Len(t, activas, 2)

	count, err := empresaService.CountActivas(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	bySector, err := empresaService.SearchBySector(ctx, "LOGISTICA")
	require.NoError(t, err)
	assert.Len(t, bySector, 2)

	activasBySector, err := empresaService.GetActivasBySector(ctx, "Logistica")
	require.NoError(t, err)
	require.Len(t, activasBySector, 1)
	assert.Equal(t, "B00000002", activasBySector[0].CIF)

	byName, err := empresaService.SearchByRazonSocial(ctx, "aCm")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Acme SA", byName[0].RazonSocial)

	byFacturacion, err := empresaService.SearchByFacturacionMinima(ctx, 999_999)
	require.NoError(t, err)
	require.Len(t, byFacturacion, 1)
	assert.Equal(t, "B00000003", byFacturacion[0].CIF)

	none, err := empresaService.SearchByRazonSocial(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
