package service

import (
	"context"
	"errors"

	"github.com/ikkim/gestion-empresas-backend/internal/app/dto"
	"github.com/ikkim/gestion-empresas-backend/internal/app/repository"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"gorm.io/gorm"
)

type EmpresaService interface {
	GetAll(ctx context.Context) ([]dto.EmpresaDTO, error)
	GetByID(ctx context.Context, id uint) (dto.EmpresaDTO, bool, error)
	GetByCIF(ctx context.Context, cif string) (dto.EmpresaDTO, bool, error)
	Create(ctx context.Context, in *dto.EmpresaDTO) (dto.EmpresaDTO, error)
	Update(ctx context.Context, id uint, in *dto.EmpresaDTO) (dto.EmpresaDTO, error)
	Delete(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error

	GetActivas(ctx context.Context) ([]dto.EmpresaDTO, error)
	GetActivasBySector(ctx context.Context, sector string) ([]dto.EmpresaDTO, error)
	SearchBySector(ctx context.Context, sector string) ([]dto.EmpresaDTO, error)
	SearchByRazonSocial(ctx context.Context, texto string) ([]dto.EmpresaDTO, error)
	SearchByFacturacionMinima(ctx context.Context, importe float64) ([]dto.EmpresaDTO, error)
	CountActivas(ctx context.Context) (int64, error)
}

type empresaService struct {
	tx repository.TxRunner
}

func NewEmpresaService(tx repository.TxRunner) EmpresaService {
	return &empresaService{tx: tx}
}

func (s *empresaService) GetAll(ctx context.Context) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "all", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.FindAll()
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) GetByID(ctx context.Context, id uint) (dto.EmpresaDTO, bool, error) {
	logger.Debug("Fetching empresa", map[string]interface{}{
		"empresa_id": id,
	})

	var out dto.EmpresaDTO
	found := false
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		empresa, err := repos.Empresas.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out, found = dto.ToEmpresaDTO(empresa), true
		return nil
	})
	if err != nil {
		logger.Error("Failed to fetch empresa", err, map[string]interface{}{
			"empresa_id": id,
		})
		return dto.EmpresaDTO{}, false, err
	}
	return out, found, nil
}

func (s *empresaService) GetByCIF(ctx context.Context, cif string) (dto.EmpresaDTO, bool, error) {
	logger.Debug("Fetching empresa by CIF", map[string]interface{}{
		"cif": cif,
	})

	var out dto.EmpresaDTO
	found := false
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		empresa, err := repos.Empresas.FindByCIF(cif)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out, found = dto.ToEmpresaDTO(empresa), true
		return nil
	})
	if err != nil {
		logger.Error("Failed to fetch empresa by CIF", err, map[string]interface{}{
			"cif": cif,
		})
		return dto.EmpresaDTO{}, false, err
	}
	return out, found, nil
}

func (s *empresaService) Create(ctx context.Context, in *dto.EmpresaDTO) (dto.EmpresaDTO, error) {
	logger.Info("Creating empresa", map[string]interface{}{
		"razon_social": in.RazonSocial,
		"cif":          in.CIF,
	})

	var out dto.EmpresaDTO
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Empresas.ExistsByCIF(in.CIF)
		if err != nil {
			return err
		}
		if exists {
			return ErrCIFDuplicado
		}

		empresa := dto.ToEmpresaModel(in)
		if err := repos.Empresas.Save(empresa); err != nil {
			// A concurrent insert with the same CIF can slip past the check above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCIFDuplicado
			}
			return err
		}
		out = dto.ToEmpresaDTO(empresa)
		return nil
	})
	if err != nil {
		logDomainFailure("Failed to create empresa", err, map[string]interface{}{
			"cif": in.CIF,
		})
		return dto.EmpresaDTO{}, err
	}

	logger.Info("Empresa created successfully", map[string]interface{}{
		"empresa_id": out.ID,
	})
	return out, nil
}

func (s *empresaService) Update(ctx context.Context, id uint, in *dto.EmpresaDTO) (dto.EmpresaDTO, error) {
	logger.Info("Updating empresa", map[string]interface{}{
		"empresa_id": id,
	})

	var out dto.EmpresaDTO
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		empresa, err := repos.Empresas.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmpresaNotFound
		}
		if err != nil {
			return err
		}

		if empresa.CIF != in.CIF {
			exists, err := repos.Empresas.ExistsByCIF(in.CIF)
			if err != nil {
				return err
			}
			if exists {
				return ErrCIFDuplicado
			}
		}

		dto.ApplyEmpresaUpdate(in, empresa)
		if err := repos.Empresas.Save(empresa); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCIFDuplicado
			}
			return err
		}
		out = dto.ToEmpresaDTO(empresa)
		return nil
	})
	if err != nil {
		logDomainFailure("Failed to update empresa", err, map[string]interface{}{
			"empresa_id": id,
		})
		return dto.EmpresaDTO{}, err
	}

	logger.Info("Empresa updated successfully", map[string]interface{}{
		"empresa_id": id,
	})
	return out, nil
}

func (s *empresaService) Delete(ctx context.Context, id uint) error {
	logger.Info("Deleting empresa", map[string]interface{}{
		"empresa_id": id,
	})

	var removedSedes int64
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Empresas.ExistsByID(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEmpresaNotFound
		}

		// Sedes are owned by the empresa and go with it.
		if removedSedes, err = repos.Sedes.DeleteByEmpresaID(id); err != nil {
			return err
		}
		return repos.Empresas.DeleteByID(id)
	})
	if err != nil {
		logDomainFailure("Failed to delete empresa", err, map[string]interface{}{
			"empresa_id": id,
		})
		return err
	}

	logger.Info("Empresa deleted successfully", map[string]interface{}{
		"empresa_id":    id,
		"sedes_removed": removedSedes,
	})
	return nil
}

func (s *empresaService) Activate(ctx context.Context, id uint) error {
	return s.setActivo(ctx, id, true)
}

func (s *empresaService) Deactivate(ctx context.Context, id uint) error {
	return s.setActivo(ctx, id, false)
}

func (s *empresaService) setActivo(ctx context.Context, id uint, activo bool) error {
	logger.Info("Changing empresa active flag", map[string]interface{}{
		"empresa_id": id,
		"activo":     activo,
	})

	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		empresa, err := repos.Empresas.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmpresaNotFound
		}
		if err != nil {
			return err
		}
		if empresa.Activo == activo {
			return nil
		}
		empresa.Activo = activo
		return repos.Empresas.Save(empresa)
	})
	if err != nil {
		logDomainFailure("Failed to change empresa active flag", err, map[string]interface{}{
			"empresa_id": id,
		})
		return err
	}
	return nil
}

func (s *empresaService) GetActivas(ctx context.Context) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "activas", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.FindActivas()
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) GetActivasBySector(ctx context.Context, sector string) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "sector_activas", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.FindBySectorAndActivas(sector)
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) SearchBySector(ctx context.Context, sector string) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "sector", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.FindBySectorIgnoreCase(sector)
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) SearchByRazonSocial(ctx context.Context, texto string) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "razon_social", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.SearchByRazonSocial(texto)
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) SearchByFacturacionMinima(ctx context.Context, importe float64) ([]dto.EmpresaDTO, error) {
	return s.list(ctx, "facturacion", func(repo repository.EmpresaRepository) ([]dto.EmpresaDTO, error) {
		empresas, err := repo.FindByFacturacionGreaterThan(importe)
		return dto.ToEmpresaDTOList(empresas), err
	})
}

func (s *empresaService) CountActivas(ctx context.Context) (int64, error) {
	var count int64
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		var err error
		count, err = repos.Empresas.CountActivas()
		return err
	})
	if err != nil {
		logger.Error("Failed to count active empresas", err)
		return 0, err
	}
	return count, nil
}

// list runs a read-only query and maps its result.
func (s *empresaService) list(ctx context.Context, criteria string, query func(repository.EmpresaRepository) ([]dto.EmpresaDTO, error)) ([]dto.EmpresaDTO, error) {
	var out []dto.EmpresaDTO
	err := s.tx.RunReadOnly(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = query(repos.Empresas)
		return err
	})
	if err != nil {
		logger.Error("Failed to list empresas", err, map[string]interface{}{
			"criteria": criteria,
		})
		return nil, err
	}

	logger.Debug("Empresas listed", map[string]interface{}{
		"criteria": criteria,
		"count":    len(out),
	})
	return out, nil
}
