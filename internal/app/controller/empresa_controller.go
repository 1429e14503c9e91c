package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	apperrors "github.com/ikkim/gestion-empresas-backend/internal/errors"
	"github.com/ikkim/gestion-empresas-backend/internal/middleware"
)

type EmpresaController struct {
	empresaService service.EmpresaService
}

func NewEmpresaController(empresaService service.EmpresaService) *EmpresaController {
	return &EmpresaController{empresaService: empresaService}
}

// ListEmpresas handles GET /api/empresas
func (ctrl *EmpresaController) ListEmpresas(c *gin.Context) {
	empresas, err := ctrl.empresaService.GetAll(c.Request.Context())
	ctrl.respondList(c, empresas, err, "list empresas")
}

// GetEmpresa handles GET /api/empresas/:id
func (ctrl *EmpresaController) GetEmpresa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	empresa, found, err := ctrl.empresaService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch empresa")
		return
	}
	if !found {
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa no encontrada")
		return
	}
	c.JSON(http.StatusOK, empresa)
}

// GetEmpresaByCIF handles GET /api/empresas/cif/:cif
func (ctrl *EmpresaController) GetEmpresaByCIF(c *gin.Context) {
	empresa, found, err := ctrl.empresaService.GetByCIF(c.Request.Context(), c.Param("cif"))
	if err != nil {
		respondServiceError(c, err, "fetch empresa")
		return
	}
	if !found {
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "No existe ninguna empresa con ese CIF")
		return
	}
	c.JSON(http.StatusOK, empresa)
}

// CreateEmpresa handles POST /api/empresas
func (ctrl *EmpresaController) CreateEmpresa(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.EmpresaDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid empresa creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err)
		return
	}

	empresa, err := ctrl.empresaService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "create empresa")
		return
	}

	log.Info("Empresa created", map[string]interface{}{
		"empresa_id": empresa.ID,
	})
	c.JSON(http.StatusCreated, empresa)
}

// UpdateEmpresa handles PUT /api/empresas/:id
func (ctrl *EmpresaController) UpdateEmpresa(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.EmpresaDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid empresa update request", map[string]interface{}{
			"empresa_id": id,
			"error":      err.Error(),
		})
		apperrors.RespondWithBindingError(c, err)
		return
	}

	empresa, err := ctrl.empresaService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "update empresa")
		return
	}
	c.JSON(http.StatusOK, empresa)
}

// DeleteEmpresa handles DELETE /api/empresas/:id
func (ctrl *EmpresaController) DeleteEmpresa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.empresaService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete empresa")
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateEmpresa handles PATCH /api/empresas/:id/activar
func (ctrl *EmpresaController) ActivateEmpresa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.empresaService.Activate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "update empresa")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeactivateEmpresa handles PATCH /api/empresas/:id/desactivar
func (ctrl *EmpresaController) DeactivateEmpresa(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.empresaService.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "update empresa")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListActivas handles GET /api/empresas/activas
func (ctrl *EmpresaController) ListActivas(c *gin.Context) {
	empresas, err := ctrl.empresaService.GetActivas(c.Request.Context())
	ctrl.respondList(c, empresas, err, "list empresas")
}

// ListBySector handles GET /api/empresas/sector/:sector
func (ctrl *EmpresaController) ListBySector(c *gin.Context) {
	empresas, err := ctrl.empresaService.SearchBySector(c.Request.Context(), c.Param("sector"))
	ctrl.respondList(c, empresas, err, "list empresas")
}

// ListActivasBySector handles GET /api/empresas/sector/:sector/activas
func (ctrl *EmpresaController) ListActivasBySector(c *gin.Context) {
	empresas, err := ctrl.empresaService.GetActivasBySector(c.Request.Context(), c.Param("sector"))
	ctrl.respondList(c, empresas, err, "list empresas")
}

// SearchEmpresas handles GET /api/empresas/buscar?texto=
func (ctrl *EmpresaController) SearchEmpresas(c *gin.Context) {
	texto, ok := requiredQuery(c, "texto")
	if !ok {
		return
	}

	empresas, err := ctrl.empresaService.SearchByRazonSocial(c.Request.Context(), texto)
	ctrl.respondList(c, empresas, err, "search empresas")
}

// ListByFacturacion handles GET /api/empresas/facturacion?minima=
func (ctrl *EmpresaController) ListByFacturacion(c *gin.Context) {
	minima, ok := floatQuery(c, "minima")
	if !ok {
		return
	}

	empresas, err := ctrl.empresaService.SearchByFacturacionMinima(c.Request.Context(), minima)
	ctrl.respondList(c, empresas, err, "search empresas")
}

// CountActivas handles GET /api/empresas/estadisticas/activas
func (ctrl *EmpresaController) CountActivas(c *gin.Context) {
	count, err := ctrl.empresaService.CountActivas(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "count empresas")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (ctrl *EmpresaController) respondList(c *gin.Context, empresas []dto.EmpresaDTO, err error, context string) {
	if err != nil {
		respondServiceError(c, err, context)
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Empresas listed", map[string]interface{}{
		"count": len(empresas),
	})
	c.JSON(http.StatusOK, empresas)
}
