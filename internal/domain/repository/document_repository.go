package repository

import (
	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(db *gorm.DB, document *entity.Document) error
	Update(db *gorm.DB, document *entity.Document) error
	FindByID(db *gorm.DB, id int64) (*entity.Document, error)
	FindByIDs(db *gorm.DB, ids []int64) ([]entity.Document, error)
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Document, error)
}
