package service

import (
	"context"
	"errors"

	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/model"
	"github.com/ikkim/gestion-empresas-backend/internal/app/repository"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"gorm.io/gorm"
)

type SedeService interface {
	GetAll(ctx context.Context) ([]dto.SedeDTO, error)
	GetByID(ctx context.Context, id uint) (dto.SedeDTO, bool, error)
	Create(ctx context.Context, in *dto.SedeDTO) (dto.SedeDTO, error)
	Update(ctx context.Context, id uint, in *dto.SedeDTO) (dto.SedeDTO, error)
	Delete(ctx context.Context, id uint) error

	GetByEmpresa(ctx context.Context, empresaID uint) ([]dto.SedeDTO, error)
	GetByEmpresaAndCiudad(ctx context.Context, empresaID uint, ciudad string) ([]dto.SedeDTO, error)
	GetPrincipal(ctx context.Context, empresaID uint) (dto.SedeDTO, bool, error)
	CountByEmpresa(ctx context.Context, empresaID uint) (int64, error)
	SearchByCiudad(ctx context.Context, ciudad string) ([]dto.SedeDTO, error)
	SearchByProvincia(ctx context.Context, provincia string) ([]dto.SedeDTO, error)
	SearchByNombre(ctx context.Context, texto string) ([]dto.SedeDTO, error)
	SearchByCapacidadMinima(ctx context.Context, capacidad float64) ([]dto.SedeDTO, error)
}

type sedeService struct {
	tx repository.TxRunner
}

func NewSedeService(tx repository.TxRunner) SedeService {
	return &sedeService{tx: tx}
}

func (s *sedeService) GetAll(ctx context.Context) ([]dto.SedeDTO, error) {
	return s.list(ctx, "all", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindAll()
	})
}

func (s *sedeService) GetByID(ctx context.Context, id uint) (dto.SedeDTO, bool, error) {
	return s.findOne(ctx, "id", id, func(repo repository.SedeRepository) (*model.Sede, error) {
		return repo.FindByID(id)
	})
}

func (s *sedeService) Create(ctx context.Context, in *dto.SedeDTO) (dto.SedeDTO, error) {
	var empresaID uint
	if in.EmpresaID != nil {
		empresaID = *in.EmpresaID
	}

	logger.Info("Creating sede", map[string]interface{}{
		"nombre":       in.Nombre,
		"empresa_id":   empresaID,
		"es_principal": in.IsPrincipal(),
	})

	var out dto.SedeDTO
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Empresas.ExistsByID(empresaID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEmpresaNotFound
		}

		if in.IsPrincipal() {
			hasPrincipal, err := repos.Sedes.ExistsPrincipalByEmpresaID(empresaID)
			if err != nil {
				return err
			}
			if hasPrincipal {
				return ErrSedePrincipalDuplicada
			}
		}

		sede := dto.ToSedeModel(in)
		sede.EmpresaID = empresaID
		if err := s.save(repos.Sedes, sede); err != nil {
			return err
		}
		out = dto.ToSedeDTO(sede)
		return nil
	})
	if err != nil {
		logDomainFailure("Failed to create sede", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return dto.SedeDTO{}, err
	}

	logger.Info("Sede created successfully", map[string]interface{}{
		"sede_id":    out.ID,
		"empresa_id": empresaID,
	})
	return out, nil
}

func (s *sedeService) Update(ctx context.Context, id uint, in *dto.SedeDTO) (dto.SedeDTO, error) {
	logger.Info("Updating sede", map[string]interface{}{
		"sede_id": id,
	})

	var out dto.SedeDTO
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		sede, err := repos.Sedes.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSedeNotFound
		}
		if err != nil {
			return err
		}

		// Only a false -> true transition can introduce a second principal.
		if in.IsPrincipal() && !sede.EsPrincipal {
			hasPrincipal, err := repos.Sedes.ExistsPrincipalByEmpresaID(sede.EmpresaID)
			if err != nil {
				return err
			}
			if hasPrincipal {
				return ErrSedePrincipalDuplicada
			}
		}

		dto.ApplySedeUpdate(in, sede)
		if err := s.save(repos.Sedes, sede); err != nil {
			return err
		}
		out = dto.ToSedeDTO(sede)
		return nil
	})
	if err != nil {
		logDomainFailure("Failed to update sede", err, map[string]interface{}{
			"sede_id": id,
		})
		return dto.SedeDTO{}, err
	}

	logger.Info("Sede updated successfully", map[string]interface{}{
		"sede_id": id,
	})
	return out, nil
}

func (s *sedeService) Delete(ctx context.Context, id uint) error {
	logger.Info("Deleting sede", map[string]interface{}{
		"sede_id": id,
	})

	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Sedes.ExistsByID(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSedeNotFound
		}
		return repos.Sedes.DeleteByID(id)
	})
	if err != nil {
		logDomainFailure("Failed to delete sede", err, map[string]interface{}{
			"sede_id": id,
		})
		return err
	}

	logger.Info("Sede deleted successfully", map[string]interface{}{
		"sede_id": id,
	})
	return nil
}

func (s *sedeService) GetByEmpresa(ctx context.Context, empresaID uint) ([]dto.SedeDTO, error) {
	return s.list(ctx, "empresa", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindByEmpresaID(empresaID)
	})
}

func (s *sedeService) GetByEmpresaAndCiudad(ctx context.Context, empresaID uint, ciudad string) ([]dto.SedeDTO, error) {
	return s.list(ctx, "empresa_ciudad", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindByEmpresaIDAndCiudadIgnoreCase(empresaID, ciudad)
	})
}

func (s *sedeService) GetPrincipal(ctx context.Context, empresaID uint) (dto.SedeDTO, bool, error) {
	return s.findOne(ctx, "principal", empresaID, func(repo repository.SedeRepository) (*model.Sede, error) {
		return repo.FindPrincipalByEmpresaID(empresaID)
	})
}

func (s *sedeService) CountByEmpresa(ctx context.Context, empresaID uint) (int64, error) {
	var count int64
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		var err error
		count, err = repos.Sedes.CountByEmpresaID(empresaID)
		return err
	})
	if err != nil {
		logger.Error("Failed to count sedes", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return 0, err
	}
	return count, nil
}

func (s *sedeService) SearchByCiudad(ctx context.Context, ciudad string) ([]dto.SedeDTO, error) {
	return s.list(ctx, "ciudad", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindByCiudadIgnoreCase(ciudad)
	})
}

func (s *sedeService) SearchByProvincia(ctx context.Context, provincia string) ([]dto.SedeDTO, error) {
	return s.list(ctx, "provincia", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindByProvinciaIgnoreCase(provincia)
	})
}

func (s *sedeService) SearchByNombre(ctx context.Context, texto string) ([]dto.SedeDTO, error) {
	return s.list(ctx, "nombre", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.SearchByNombre(texto)
	})
}

func (s *sedeService) SearchByCapacidadMinima(ctx context.Context, capacidad float64) ([]dto.SedeDTO, error) {
	return s.list(ctx, "capacidad", func(repo repository.SedeRepository) ([]model.Sede, error) {
		return repo.FindByCapacidadAtLeast(capacidad)
	})
}

// save maps a unique index violation (the principal index racing the check) to a validation error.
func (s *sedeService) save(repo repository.SedeRepository, sede *model.Sede) error {
	err := repo.Save(sede)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSedePrincipalDuplicada
	}
	return err
}

func (s *sedeService) findOne(ctx context.Context, criteria string, key uint, query func(repository.SedeRepository) (*model.Sede, error)) (dto.SedeDTO, bool, error) {
	var out dto.SedeDTO
	found := false
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		sede, err := query(repos.Sedes)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out, found = dto.ToSedeDTO(sede), true
		return nil
	})
	if err != nil {
		logger.Error("Failed to fetch sede", err, map[string]interface{}{
			"criteria": criteria,
			"key":      key,
		})
		return dto.SedeDTO{}, false, err
	}
	return out, found, nil
}

func (s *sedeService) list(ctx context.Context, criteria string, query func(repository.SedeRepository) ([]model.Sede, error)) ([]dto.SedeDTO, error) {
	var out []dto.SedeDTO
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		sedes, err := query(repos.Sedes)
		if err != nil {
			return err
		}
		out = dto.ToSedeDTOList(sedes)
		return nil
	})
	if err != nil {
		logger.Error("Failed to list sedes", err, map[string]interface{}{
			"criteria": criteria,
		})
		return nil, err
	}
	return out, nil
}
