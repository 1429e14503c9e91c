package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/repository"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	"github.com/ikkim/gestion-empresas-backend/internal/db"
	apperrors "github.com/ikkim/gestion-empresas-backend/internal/errors"
	"github.com/ikkim/gestion-empresas-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupControllerTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	tx := repository.NewTxRunner(testDB)
	empresaController := NewEmpresaController(service.NewEmpresaService(tx))
	sedeController := NewSedeController(service.NewSedeService(tx))

	gin.SetMode(gin.TestMode)
	apperrors.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())

	empresas := router.Group("/api/empresas")
	{
		empresas.GET("", empresaController.ListEmpresas)
		empresas.POST("", empresaController.CreateEmpresa)
		empresas.GET("/activas", empresaController.ListActivas)
		empresas.GET("/buscar", empresaController.SearchEmpresas)
		empresas.GET("/facturacion", empresaController.ListByFacturacion)
		empresas.GET("/estadisticas/activas", empresaController.CountActivas)
		empresas.GET("/cif/:cif", empresaController.GetEmpresaByCIF)
		empresas.GET("/sector/:sector", empresaController.ListBySector)
		empresas.GET("/sector/:sector/activas", empresaController.ListActivasBySector)
		empresas.GET("/:id", empresaController.GetEmpresa)
		empresas.PUT("/:id", empresaController.UpdateEmpresa)
		empresas.DELETE("/:id", empresaController.DeleteEmpresa)
		empresas.PATCH("/:id/activar", empresaController.ActivateEmpresa)
		empresas.PATCH("/:id/desactivar", empresaController.DeactivateEmpresa)
	}

	sedes := router.Group("/api/sedes")
	{
		sedes.GET("", sedeController.ListSedes)
		sedes.POST("", sedeController.CreateSede)
		sedes.GET("/buscar", sedeController.SearchSedes)
		sedes.GET("/capacidad", sedeController.ListByCapacidad)
		sedes.GET("/ciudad/:ciudad", sedeController.ListByCiudad)
		sedes.GET("/provincia/:provincia", sedeController.ListByProvincia)
		sedes.GET("/empresa/:empresaId", sedeController.ListByEmpresa)
		sedes.GET("/empresa/:empresaId/principal", sedeController.GetPrincipal)
		sedes.GET("/empresa/:empresaId/count", sedeController.CountByEmpresa)
		sedes.GET("/empresa/:empresaId/ciudad/:ciudad", sedeController.ListByEmpresaAndCiudad)
		sedes.GET("/:id", sedeController.GetSede)
		sedes.PUT("/:id", sedeController.UpdateSede)
		sedes.DELETE("/:id", sedeController.DeleteSede)
	}

	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ValidationError {
	var body apperrors.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func postEmpresa(t *testing.T, router *gin.Engine, razonSocial, cif string) dto.EmpresaDTO {
	w := doRequest(router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"razonSocial": razonSocial,
		"cif":         cif,
		"sector":      "Logistica",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out dto.EmpresaDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestEmpresaController_Create(t *testing.T) {
	router := setupControllerTest(t)

	created := postEmpresa(t, router, "Acme SA", "B12345678")
	assert.NotZero(t, created.ID)
	assert.True(t, *created.Activo)
	assert.NotNil(t, created.FechaAlta)

	w := doRequest(router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"razonSocial": "Otra SA",
		"cif":         "B12345678",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.EmpresaCIFDuplicado, decodeError(t, w).Error)
}

func TestEmpresaController_Create_ValidationErrors(t *testing.T) {
	router := setupControllerTest(t)

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing razonSocial", map[string]interface{}{"cif": "B1"}, "razonSocial"},
		{"missing cif", map[string]interface{}{"razonSocial": "Acme"}, "cif"},
		{"cif too long", map[string]interface{}{"razonSocial": "Acme", "cif": "B123456789012345678901"}, "cif"},
		{"bad email", map[string]interface{}{"razonSocial": "Acme", "cif": "B1", "email": "no-es-email"}, "email"},
		{"negative revenue", map[string]interface{}{"razonSocial": "Acme", "cif": "B1", "facturacionAnual": -1}, "facturacionAnual"},
		{"negative employees", map[string]interface{}{"razonSocial": "Acme", "cif": "B1", "numeroEmpleados": -3}, "numeroEmpleados"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/empresas", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeError(t, w)
			assert.Equal(t, apperrors.ValidationInvalidInput, body.Error)
			assert.Contains(t, body.Fields, tt.field)
		})
	}

	w := doRequest(router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"razonSocial": "Acme", "cif": "B1", "fechaAlta": "01/01/2020",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidInput, decodeError(t, w).Error)
}

func TestEmpresaController_Get(t *testing.T) {
	router := setupControllerTest(t)

	created := postEmpresa(t, router, "Acme SA", "B12345678")

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/empresas/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cif":"B12345678"`)

	w = doRequest(router, http.MethodGet, "/api/empresas/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.EmpresaNotFound, decodeError(t, w).Error)

	w = doRequest(router, http.MethodGet, "/api/empresas/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidID, decodeError(t, w).Error)

	w = doRequest(router, http.MethodGet, "/api/empresas/cif/B12345678", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/empresas/cif/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmpresaController_Update(t *testing.T) {
	router := setupControllerTest(t)

	acme := postEmpresa(t, router, "Acme SA", "B12345678")
	postEmpresa(t, router, "Beta SL", "B87654321")

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/api/empresas/%d", acme.ID), map[string]interface{}{
		"razonSocial": "Acme Renombrada",
		"cif":         "B12345678",
		"sector":      "Textil",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated dto.EmpresaDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Acme Renombrada", updated.RazonSocial)
	assert.Equal(t, "Textil", updated.Sector)

	// Duplicate CIF is a validation failure, not a missing resource
	w = doRequest(router, http.MethodPut, fmt.Sprintf("/api/empresas/%d", acme.ID), map[string]interface{}{
		"razonSocial": "Acme",
		"cif":         "B87654321",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.EmpresaCIFDuplicado, decodeError(t, w).Error)

	w = doRequest(router, http.MethodPut, "/api/empresas/999", map[string]interface{}{
		"razonSocial": "X",
		"cif":         "X1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPut, fmt.Sprintf("/api/empresas/%d", acme.ID), map[string]interface{}{
		"cif": "B12345678",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmpresaController_DeleteAndToggle(t *testing.T) {
	router := setupControllerTest(t)

	acme := postEmpresa(t, router, "Acme SA", "B12345678")
	path := fmt.Sprintf("/api/empresas/%d", acme.ID)

	w := doRequest(router, http.MethodPatch, path+"/desactivar", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/empresas/estadisticas/activas", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())

	w = doRequest(router, http.MethodPatch, path+"/activar", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/empresas/estadisticas/activas", nil)
	assert.Equal(t, "1", w.Body.String())

	w = doRequest(router, http.MethodPatch, "/api/empresas/999/activar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmpresaController_Lists(t *testing.T) {
	router := setupControllerTest(t)

	acme := postEmpresa(t, router, "Acme SA", "B00000001")
	postEmpresa(t, router, "Beta SL", "B00000002")

	w := doRequest(router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"razonSocial":      "Gamma Textil",
		"cif":              "B00000003",
		"sector":           "Textil",
		"facturacionAnual": 2500000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	doRequest(router, http.MethodPatch, fmt.Sprintf("/api/empresas/%d/desactivar", acme.ID), nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"all", "/api/empresas", 3},
		{"activas", "/api/empresas/activas", 2},
		{"sector", "/api/empresas/sector/logistica", 2},
		{"sector activas", "/api/empresas/sector/Logistica/activas", 1},
		{"buscar", "/api/empresas/buscar?texto=aCm", 1},
		{"buscar sin coincidencias", "/api/empresas/buscar?texto=zzz", 0},
		{"facturacion", "/api/empresas/facturacion?minima=1000000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var list []dto.EmpresaDTO
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			assert.NotNil(t, list)
			assert.Len(t, list, tt.want)
		})
	}

	w = doRequest(router, http.MethodGet, "/api/empresas/buscar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidQuery, decodeError(t, w).Error)

	w = doRequest(router, http.MethodGet, "/api/empresas/facturacion?minima=mucho", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
