package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
)

// Error kinds. Every service error wraps exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrEmpresaNotFound        = fmt.Errorf("empresa no encontrada: %w", ErrNotFound)
	ErrSedeNotFound           = fmt.Errorf("sede no encontrada: %w", ErrNotFound)
	ErrCIFDuplicado           = fmt.Errorf("ya existe una empresa con ese CIF: %w", ErrValidation)
	ErrSedePrincipalDuplicada = fmt.Errorf("ya existe una sede principal para esta empresa: %w", ErrValidation)
)

// logDomainFailure logs business rule rejections as warnings and everything else as errors.
func logDomainFailure(msg string, err error, fields map[string]interface{}) {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
		fields["reason"] = err.Error()
		logger.Warn(msg, fields)
		return
	}
	logger.Error(msg, err, fields)
}
