package repository

import (
	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

// HospitalRepository hides soft-deleted hospitals from every lookup.
type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	Update(db *gorm.DB, hospital *entity.Hospital) error
	FindActiveByID(db *gorm.DB, id int64) (*entity.Hospital, error)
	FindActive(db *gorm.DB, limit, offset int) ([]entity.Hospital, int64, error)
	ExistsActive(db *gorm.DB, id int64) (bool, error)
	SoftDelete(db *gorm.DB, id int64) (int64, error)
}
