package repository

import (
	"errors"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Create(hospital).Error
}

func (r *hospitalRepository) Update(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Save(hospital).Error
}

func (r *hospitalRepository) FindActiveByID(db *gorm.DB, id int64) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Scopes(active).Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindActive(db *gorm.DB, limit, offset int) ([]entity.Hospital, int64, error) {
	var total int64
	if err := db.Model(&entity.Hospital{}).Scopes(active).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hospitals []entity.Hospital
	err := db.Scopes(active, paginate(limit, offset)).Order("id").Find(&hospitals).Error
	if err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

func (r *hospitalRepository) ExistsActive(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&entity.Hospital{}).Scopes(active).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *hospitalRepository) SoftDelete(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Hospital{}).
		Scopes(active).
		Where("id = ?", id).
		Update("deleted", true)
	return result.RowsAffected, result.Error
}
