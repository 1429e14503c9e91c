package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a code from codes.go plus its user facing message and HTTP status.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError turns a storage error into an ErrorInfo without leaking driver details.
// context names the resource or action ("empresa", "create sede", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: getDefaultErrorMessage(context),
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: notFoundCode(context), Message: getNotFoundMessage(context)}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return parseDuplicateKeyError(err.Error(), context)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return parseForeignKeyError(err.Error(), context)
	}

	// Drivers that do not translate errors still report them as text.
	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint"):
		return parseDuplicateKeyError(errLower, context)
	case strings.Contains(errLower, "foreign key constraint"):
		return parseForeignKeyError(errLower, context)
	case strings.Contains(errLower, "not null constraint") || strings.Contains(errLower, "violates not-null constraint"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationRequired, Message: "Falta un campo obligatorio"}
	case strings.Contains(errLower, "connection refused") || strings.Contains(errLower, "timeout"):
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalDatabaseError,
			Message: "No se pudo conectar con la base de datos. Inténtelo de nuevo más tarde",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)
	contextLower := strings.ToLower(context)

	if strings.Contains(errLower, "cif") || strings.Contains(contextLower, "empresa") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    EmpresaCIFDuplicado,
			Message: "Ya existe una empresa con ese CIF",
		}
	}
	if strings.Contains(errLower, "principal") || strings.Contains(contextLower, "sede") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    SedePrincipalDuplicada,
			Message: "Ya existe una sede principal para esta empresa",
		}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ResourceAlreadyExists,
		Message: "Los datos ya existen",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: "Hay datos relacionados que impiden la operación",
		}
	}
	if strings.Contains(errLower, "empresa") || strings.Contains(strings.ToLower(context), "sede") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    EmpresaNotFound,
			Message: "La empresa indicada no existe",
		}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ResourceNotFound,
		Message: "No se encontraron los datos relacionados",
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "principal"):
		return SedePrincipalNotFound
	case strings.Contains(contextLower, "sede"):
		return SedeNotFound
	case strings.Contains(contextLower, "empresa"):
		return EmpresaNotFound
	}
	return ResourceNotFound
}

func getNotFoundMessage(context string) string {
	switch notFoundCode(context) {
	case SedePrincipalNotFound:
		return "La empresa no tiene sede principal"
	case SedeNotFound:
		return "Sede no encontrada"
	case EmpresaNotFound:
		return "Empresa no encontrada"
	}
	return "No se encontraron los datos solicitados"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Error al dar de alta. Inténtelo de nuevo más tarde"
	case strings.Contains(contextLower, "update"):
		return "Error al actualizar. Inténtelo de nuevo más tarde"
	case strings.Contains(contextLower, "delete"):
		return "Error al eliminar. Inténtelo de nuevo más tarde"
	}
	return "Se ha producido un error interno. Inténtelo de nuevo más tarde"
}

// ParseAndRespond parses err and writes it with the status ParseError picked.
// Unclassified failures go out through InternalError.
func ParseAndRespond(c *gin.Context, err error, context string) {
	errorInfo := ParseError(err, context)
	if errorInfo.Code == InternalServerError {
		InternalError(c, errorInfo.Message)
		return
	}
	RespondWithError(c, errorInfo.Status, errorInfo.Code, errorInfo.Message)
}
