package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	apperrors "github.com/ikkim/gestion-empresas-backend/internal/errors"
	"github.com/ikkim/gestion-empresas-backend/internal/middleware"
)

type SedeController struct {
	sedeService service.SedeService
}

func NewSedeController(sedeService service.SedeService) *SedeController {
	return &SedeController{sedeService: sedeService}
}

// ListSedes handles GET /api/sedes
func (ctrl *SedeController) ListSedes(c *gin.Context) {
	sedes, err := ctrl.sedeService.GetAll(c.Request.Context())
	ctrl.respondList(c, sedes, err, "list sedes")
}

// GetSede handles GET /api/sedes/:id
func (ctrl *SedeController) GetSede(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sede, found, err := ctrl.sedeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch sede")
		return
	}
	if !found {
		apperrors.NotFound(c, apperrors.SedeNotFound, "Sede no encontrada")
		return
	}
	c.JSON(http.StatusOK, sede)
}

// CreateSede handles POST /api/sedes
func (ctrl *SedeController) CreateSede(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.SedeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sede creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err)
		return
	}

	sede, err := ctrl.sedeService.Create(c.Request.Context(), &req)
	if err != nil {
		// The empresa is part of the request body here, so a missing one is bad input.
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.BadRequest(c, apperrors.EmpresaNotFound, "La empresa indicada no existe")
			return
		}
		respondServiceError(c, err, "create sede")
		return
	}

	log.Info("Sede created", map[string]interface{}{
		"sede_id":    sede.ID,
		"empresa_id": *sede.EmpresaID,
	})
	c.JSON(http.StatusCreated, sede)
}

// UpdateSede handles PUT /api/sedes/:id
func (ctrl *SedeController) UpdateSede(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SedeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sede update request", map[string]interface{}{
			"sede_id": id,
			"error":   err.Error(),
		})
		apperrors.RespondWithBindingError(c, err)
		return
	}

	sede, err := ctrl.sedeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "update sede")
		return
	}
	c.JSON(http.StatusOK, sede)
}

// DeleteSede handles DELETE /api/sedes/:id
func (ctrl *SedeController) DeleteSede(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.sedeService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete sede")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByEmpresa handles GET /api/sedes/empresa/:empresaId
func (ctrl *SedeController) ListByEmpresa(c *gin.Context) {
	empresaID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	sedes, err := ctrl.sedeService.GetByEmpresa(c.Request.Context(), empresaID)
	ctrl.respondList(c, sedes, err, "list sedes")
}

// ListByEmpresaAndCiudad handles GET /api/sedes/empresa/:empresaId/ciudad/:ciudad
func (ctrl *SedeController) ListByEmpresaAndCiudad(c *gin.Context) {
	empresaID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	sedes, err := ctrl.sedeService.GetByEmpresaAndCiudad(c.Request.Context(), empresaID, c.Param("ciudad"))
	ctrl.respondList(c, sedes, err, "list sedes")
}

// GetPrincipal handles GET /api/sedes/empresa/:empresaId/principal
func (ctrl *SedeController) GetPrincipal(c *gin.Context) {
	empresaID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	sede, found, err := ctrl.sedeService.GetPrincipal(c.Request.Context(), empresaID)
	if err != nil {
		respondServiceError(c, err, "fetch sede principal")
		return
	}
	if !found {
		apperrors.NotFound(c, apperrors.SedePrincipalNotFound, "La empresa no tiene sede principal")
		return
	}
	c.JSON(http.StatusOK, sede)
}

// CountByEmpresa handles GET /api/sedes/empresa/:empresaId/count
func (ctrl *SedeController) CountByEmpresa(c *gin.Context) {
	empresaID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	count, err := ctrl.sedeService.CountByEmpresa(c.Request.Context(), empresaID)
	if err != nil {
		respondServiceError(c, err, "count sedes")
		return
	}
	c.JSON(http.StatusOK, count)
}

// ListByCiudad handles GET /api/sedes/ciudad/:ciudad
func (ctrl *SedeController) ListByCiudad(c *gin.Context) {
	sedes, err := ctrl.sedeService.SearchByCiudad(c.Request.Context(), c.Param("ciudad"))
	ctrl.respondList(c, sedes, err, "list sedes")
}

// ListByProvincia handles GET /api/sedes/provincia/:provincia
func (ctrl *SedeController) ListByProvincia(c *gin.Context) {
	sedes, err := ctrl.sedeService.SearchByProvincia(c.Request.Context(), c.Param("provincia"))
	ctrl.respondList(c, sedes, err, "list sedes")
}

// SearchSedes handles GET /api/sedes/buscar?texto=
func (ctrl *SedeController) SearchSedes(c *gin.Context) {
	texto, ok := requiredQuery(c, "texto")
	if !ok {
		return
	}

	sedes, err := ctrl.sedeService.SearchByNombre(c.Request.Context(), texto)
	ctrl.respondList(c, sedes, err, "search sedes")
}

// ListByCapacidad handles GET /api/sedes/capacidad?minima=
func (ctrl *SedeController) ListByCapacidad(c *gin.Context) {
	minima, ok := floatQuery(c, "minima")
	if !ok {
		return
	}

	sedes, err := ctrl.sedeService.SearchByCapacidadMinima(c.Request.Context(), minima)
	ctrl.respondList(c, sedes, err, "search sedes")
}

func (ctrl *SedeController) respondList(c *gin.Context, sedes []dto.SedeDTO, err error, context string) {
	if err != nil {
		respondServiceError(c, err, context)
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Sedes listed", map[string]interface{}{
		"count": len(sedes),
	})
	c.JSON(http.StatusOK, sedes)
}
