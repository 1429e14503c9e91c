package repository

import (
	"github.com/ikkim/gestion-empresas-backend/internal/app/model"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmpresaRepository interface {
	FindByID(id uint) (*model.Empresa, error)
	FindAll() ([]model.Empresa, error)
	Save(empresa *model.Empresa) error
	DeleteByID(id uint) error
	ExistsByID(id uint) (bool, error)

	FindByCIF(cif string) (*model.Empresa, error)
	ExistsByCIF(cif string) (bool, error)
	FindActivas() ([]model.Empresa, error)
	CountActivas() (int64, error)
	FindBySectorIgnoreCase(sector string) ([]model.Empresa, error)
	FindBySectorAndActivas(sector string) ([]model.Empresa, error)
	SearchByRazonSocial(texto string) ([]model.Empresa, error)
	FindByFacturacionGreaterThan(importe float64) ([]model.Empresa, error)
}

type empresaRepository struct {
	db *gorm.DB
}

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository {
	return &empresaRepository{db: db}
}

// withSedes preloads the derived Empresa -> Sedes direction.
func (r *empresaRepository) withSedes() *gorm.DB {
	return r.db.Model(&model.Empresa{}).Preload("Sedes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *empresaRepository) FindByID(id uint) (*model.Empresa, error) {
	logger.Debug("Finding empresa by ID", map[string]interface{}{
		"empresa_id": id,
	})

	var empresa model.Empresa
	if err := r.withSedes().First(&empresa, id).Error; err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) FindAll() ([]model.Empresa, error) {
	return r.find("all", r.withSedes())
}

func (r *empresaRepository) Save(empresa *model.Empresa) error {
	logger.Debug("Saving empresa", map[string]interface{}{
		"empresa_id": empresa.ID,
		"cif":        empresa.CIF,
	})

	// Sedes are persisted on their own; never cascade-write them from here.
	if err := r.db.Omit(clause.Associations).Save(empresa).Error; err != nil {
		logger.Error("Failed to save empresa", err, map[string]interface{}{
			"empresa_id": empresa.ID,
			"cif":        empresa.CIF,
		})
		return err
	}

	logger.Debug("Empresa saved", map[string]interface{}{
		"empresa_id": empresa.ID,
	})
	return nil
}

func (r *empresaRepository) DeleteByID(id uint) error {
	logger.Debug("Deleting empresa", map[string]interface{}{
		"empresa_id": id,
	})

	if err := r.db.Delete(&model.Empresa{}, id).Error; err != nil {
		logger.Error("Failed to delete empresa", err, map[string]interface{}{
			"empresa_id": id,
		})
		return err
	}
	return nil
}

func (r *empresaRepository) ExistsByID(id uint) (bool, error) {
	return r.exists(r.db.Where("id = ?", id))
}

func (r *empresaRepository) FindByCIF(cif string) (*model.Empresa, error) {
	logger.Debug("Finding empresa by CIF", map[string]interface{}{
		"cif": cif,
	})

	var empresa model.Empresa
	if err := r.withSedes().Where("cif = ?", cif).First(&empresa).Error; err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) ExistsByCIF(cif string) (bool, error) {
	return r.exists(r.db.Where("cif = ?", cif))
}

func (r *empresaRepository) FindActivas() ([]model.Empresa, error) {
	return r.find("activas", r.withSedes().Where("activo = ?", true))
}

func (r *empresaRepository) CountActivas() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Empresa{}).Where("activo = ?", true).Count(&count).Error; err != nil {
		logger.Error("Failed to count active empresas", err)
		return 0, err
	}
	return count, nil
}

func (r *empresaRepository) FindBySectorIgnoreCase(sector string) ([]model.Empresa, error) {
	return r.find("sector", r.withSedes().Where("LOWER(sector) = LOWER(?)", sector))
}

func (r *empresaRepository) FindBySectorAndActivas(sector string) ([]model.Empresa, error) {
	return r.find("sector_activas", r.withSedes().Where("sector = ? AND activo = ?", sector, true))
}

func (r *empresaRepository) SearchByRazonSocial(texto string) ([]model.Empresa, error) {
	return r.find("razon_social", r.withSedes().Where(likeContains("razon_social"), containsPattern(texto)))
}

func (r *empresaRepository) FindByFacturacionGreaterThan(importe float64) ([]model.Empresa, error) {
	return r.find("facturacion", r.withSedes().Where("facturacion_anual > ?", importe))
}

func (r *empresaRepository) find(criteria string, query *gorm.DB) ([]model.Empresa, error) {
	empresas := []model.Empresa{}
	if err := query.Order("id ASC").Find(&empresas).Error; err != nil {
		logger.Error("Failed to find empresas", err, map[string]interface{}{
			"criteria": criteria,
		})
		return nil, err
	}

	logger.Debug("Empresas found", map[string]interface{}{
		"criteria": criteria,
		"count":    len(empresas),
	})
	return empresas, nil
}

func (r *empresaRepository) exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Model(&model.Empresa{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
