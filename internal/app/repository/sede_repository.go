package repository

import (
	"strings"

	"github.com/ikkim/gestion-empresas-backend/internal/app/model"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"gorm.io/gorm"
)

type SedeRepository interface {
	FindByID(id uint) (*model.Sede, error)
	FindAll() ([]model.Sede, error)
	Save(sede *model.Sede) error
	DeleteByID(id uint) error
	ExistsByID(id uint) (bool, error)

	FindByEmpresaID(empresaID uint) ([]model.Sede, error)
	FindByEmpresaIDAndCiudadIgnoreCase(empresaID uint, ciudad string) ([]model.Sede, error)
	DeleteByEmpresaID(empresaID uint) (int64, error)
	CountByEmpresaID(empresaID uint) (int64, error)
	FindPrincipalByEmpresaID(empresaID uint) (*model.Sede, error)
	ExistsPrincipalByEmpresaID(empresaID uint) (bool, error)
	FindByCiudadIgnoreCase(ciudad string) ([]model.Sede, error)
	FindByProvinciaIgnoreCase(provincia string) ([]model.Sede, error)
	FindByCapacidadAtLeast(capacidad float64) ([]model.Sede, error)
	SearchByNombre(texto string) ([]model.Sede, error)
}

type sedeRepository struct {
	db *gorm.DB
}

func NewSedeRepository(db *gorm.DB) SedeRepository {
	return &sedeRepository{db: db}
}

func (r *sedeRepository) FindByID(id uint) (*model.Sede, error) {
	logger.Debug("Finding sede by ID", map[string]interface{}{
		"sede_id": id,
	})

	var sede model.Sede
	if err := r.db.First(&sede, id).Error; err != nil {
		return nil, err
	}
	return &sede, nil
}

func (r *sedeRepository) FindAll() ([]model.Sede, error) {
	return r.find("all", r.db)
}

func (r *sedeRepository) Save(sede *model.Sede) error {
	logger.Debug("Saving sede", map[string]interface{}{
		"sede_id":      sede.ID,
		"empresa_id":   sede.EmpresaID,
		"es_principal": sede.EsPrincipal,
	})

	if err := r.db.Save(sede).Error; err != nil {
		logger.Error("Failed to save sede", err, map[string]interface{}{
			"sede_id":    sede.ID,
			"empresa_id": sede.EmpresaID,
		})
		return err
	}

	logger.Debug("Sede saved", map[string]interface{}{
		"sede_id": sede.ID,
	})
	return nil
}

func (r *sedeRepository) DeleteByID(id uint) error {
	logger.Debug("Deleting sede", map[string]interface{}{
		"sede_id": id,
	})

	if err := r.db.Delete(&model.Sede{}, id).Error; err != nil {
		logger.Error("Failed to delete sede", err, map[string]interface{}{
			"sede_id": id,
		})
		return err
	}
	return nil
}

func (r *sedeRepository) ExistsByID(id uint) (bool, error) {
	return r.exists(r.db.Where("id = ?", id))
}

func (r *sedeRepository) FindByEmpresaID(empresaID uint) ([]model.Sede, error) {
	return r.find("empresa", r.db.Where("empresa_id = ?", empresaID))
}

func (r *sedeRepository) FindByEmpresaIDAndCiudadIgnoreCase(empresaID uint, ciudad string) ([]model.Sede, error) {
	return r.find("empresa_ciudad", r.db.Where("empresa_id = ? AND LOWER(ciudad) = LOWER(?)", empresaID, ciudad))
}

func (r *sedeRepository) DeleteByEmpresaID(empresaID uint) (int64, error) {
	result := r.db.Where("empresa_id = ?", empresaID).Delete(&model.Sede{})
	if result.Error != nil {
		logger.Error("Failed to delete sedes of empresa", result.Error, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return 0, result.Error
	}

	logger.Debug("Sedes of empresa deleted", map[string]interface{}{
		"empresa_id": empresaID,
		"count":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *sedeRepository) CountByEmpresaID(empresaID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Sede{}).Where("empresa_id = ?", empresaID).Count(&count).Error; err != nil {
		logger.Error("Failed to count sedes", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return 0, err
	}
	return count, nil
}

func (r *sedeRepository) FindPrincipalByEmpresaID(empresaID uint) (*model.Sede, error) {
	var sede model.Sede
	if err := r.db.Where("empresa_id = ? AND es_principal = ?", empresaID, true).First(&sede).Error; err != nil {
		return nil, err
	}
	return &sede, nil
}

func (r *sedeRepository) ExistsPrincipalByEmpresaID(empresaID uint) (bool, error) {
	return r.exists(r.db.Where("empresa_id = ? AND es_principal = ?", empresaID, true))
}

func (r *sedeRepository) FindByCiudadIgnoreCase(ciudad string) ([]model.Sede, error) {
	return r.find("ciudad", r.db.Where("LOWER(ciudad) = LOWER(?)", ciudad))
}

func (r *sedeRepository) FindByProvinciaIgnoreCase(provincia string) ([]model.Sede, error) {
	return r.find("provincia", r.db.Where("LOWER(provincia) = LOWER(?)", provincia))
}

func (r *sedeRepository) FindByCapacidadAtLeast(capacidad float64) ([]model.Sede, error) {
	return r.find("capacidad", r.db.Where("capacidad_almacenamiento >= ?", capacidad))
}

func (r *sedeRepository) SearchByNombre(texto string) ([]model.Sede, error) {
	return r.find("nombre", r.db.Where(likeContains("nombre"), containsPattern(texto)))
}

func (r *sedeRepository) find(criteria string, query *gorm.DB) ([]model.Sede, error) {
	sedes := []model.Sede{}
	if err := query.Order("id ASC").Find(&sedes).Error; err != nil {
		logger.Error("Failed to find sedes", err, map[string]interface{}{
			"criteria": criteria,
		})
		return nil, err
	}

	logger.Debug("Sedes found", map[string]interface{}{
		"criteria": criteria,
		"count":    len(sedes),
	})
	return sedes, nil
}

func (r *sedeRepository) exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Model(&model.Sede{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likeEscaper escapes LIKE wildcards so texto matches literally. Queries pair it with likeContains.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeContains is the case-insensitive substring condition for column.
func likeContains(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '\\'"
}

// containsPattern builds a LIKE pattern matching texto anywhere in the column.
func containsPattern(texto string) string {
	return "%" + likeEscaper.Replace(texto) + "%"
}
