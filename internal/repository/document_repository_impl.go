package repository

import (
	"errors"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type documentRepository struct{}

func NewDocumentRepository() domainRepo.DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(db *gorm.DB, document *entity.Document) error {
	return db.Create(document).Error
}

func (r *documentRepository) Update(db *gorm.DB, document *entity.Document) error {
	return db.Save(document).Error
}

func (r *documentRepository) FindByID(db *gorm.DB, id int64) (*entity.Document, error) {
	var document entity.Document
	err := db.Where("id = ?", id).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByIDs(db *gorm.DB, ids []int64) ([]entity.Document, error) {
	var documents []entity.Document
	if len(ids) == 0 {
		return documents, nil
	}
	err := db.Where("id IN ?", ids).Order("id").Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Document, error) {
	var documents []entity.Document
	err := db.Where("patient_id = ?", patientID).Order("date DESC, id DESC").Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}
