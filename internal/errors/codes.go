package errors

// Error codes returned in the "error" field of every error body.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// Validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidQuery = "VALIDATION_INVALID_QUERY"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// Generic resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Empresas
	EmpresaNotFound     = "EMPRESA_NOT_FOUND"
	EmpresaCIFDuplicado = "EMPRESA_CIF_DUPLICADO"

	// Sedes
	SedeNotFound           = "SEDE_NOT_FOUND"
	SedePrincipalNotFound  = "SEDE_PRINCIPAL_NOT_FOUND"
	SedePrincipalDuplicada = "SEDE_PRINCIPAL_DUPLICADA"

	// Internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
