package repository

import (
	"errors"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type timetableRepository struct{}

func NewTimetableRepository() domainRepo.TimetableRepository {
	return &timetableRepository{}
}

func (r *timetableRepository) Create(db *gorm.DB, timetable *entity.Timetable) error {
	return db.Create(timetable).Error
}

func (r *timetableRepository) Update(db *gorm.DB, timetable *entity.Timetable) error {
	return db.Omit("Appointments").Save(timetable).Error
}

func (r *timetableRepository) FindByID(db *gorm.DB, id int64) (*entity.Timetable, error) {
	var timetable entity.Timetable
	err := db.Where("id = ?", id).First(&timetable).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &timetable, nil
}

func (r *timetableRepository) Find(db *gorm.DB, filter domainRepo.TimetableFilter) ([]entity.Timetable, error) {
	var timetables []entity.Timetable
	err := db.Scopes(timetableFilter(filter)).Order("from_time, id").Find(&timetables).Error
	if err != nil {
		return nil, err
	}
	return timetables, nil
}

// Delete removes appointments first so the cascade holds even where the
// store does not enforce foreign keys.
func (r *timetableRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("timetable_id = ?", id).Delete(&entity.Appointment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.Timetable{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

func (r *timetableRepository) DeleteWhere(db *gorm.DB, filter domainRepo.TimetableFilter) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&entity.Timetable{}).Scopes(timetableFilter(filter)).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("timetable_id IN ?", ids).Delete(&entity.Appointment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&entity.Timetable{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

func timetableFilter(filter domainRepo.TimetableFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.HospitalID != 0 {
			db = db.Where("hospital_id = ?", filter.HospitalID)
		}
		if filter.DoctorID != 0 {
			db = db.Where("doctor_id = ?", filter.DoctorID)
		}
		if filter.Room != "" {
			db = db.Where("room = ?", filter.Room)
		}
		if !filter.From.IsZero() {
			db = db.Where("from_time >= ?", filter.From)
		}
		if !filter.To.IsZero() {
			db = db.Where("to_time <= ?", filter.To)
		}
		return db
	}
}
