package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	apperrors "github.com/ikkim/gestion-empresas-backend/internal/errors"
	"github.com/ikkim/gestion-empresas-backend/internal/middleware"
)

// parseIDParam reads a numeric path parameter. On failure it has already replied 400.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid path ID", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "El identificador '"+raw+"' no es válido")
		return 0, false
	}
	return uint(id), true
}

// requiredQuery reads a non-empty query parameter. On failure it has already replied 400.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidQuery, "Falta el parámetro '"+name+"'")
		return "", false
	}
	return value, true
}

// floatQuery reads a numeric query parameter. On failure it has already replied 400.
func floatQuery(c *gin.Context, name string) (float64, bool) {
	raw, ok := requiredQuery(c, name)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidQuery, "El parámetro '"+name+"' debe ser numérico")
		return 0, false
	}
	return value, true
}

// respondServiceError maps a service error to its HTTP reply.
// Storage errors the services did not classify fall through to ParseAndRespond,
// with context naming the operation ("create empresa", ...).
func respondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrCIFDuplicado):
		apperrors.BadRequest(c, apperrors.EmpresaCIFDuplicado, "Ya existe una empresa con ese CIF")
	case errors.Is(err, service.ErrSedePrincipalDuplicada):
		apperrors.BadRequest(c, apperrors.SedePrincipalDuplicada, "Ya existe una sede principal para esta empresa")
	case errors.Is(err, service.ErrValidation):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	case errors.Is(err, service.ErrEmpresaNotFound):
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa no encontrada")
	case errors.Is(err, service.ErrSedeNotFound):
		apperrors.NotFound(c, apperrors.SedeNotFound, "Sede no encontrada")
	case errors.Is(err, service.ErrNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, err.Error())
	default:
		middleware.GetLoggerFromContext(c).Error("Unexpected service failure", err, map[string]interface{}{
			"operation": context,
		})
		apperrors.ParseAndRespond(c, err, context)
	}
}
