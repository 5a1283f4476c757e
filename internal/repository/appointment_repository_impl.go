package repository

import (
	"errors"
	"time"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// Create relies on idx_appointment_slot: of two concurrent inserts for the
// same slot exactly one succeeds.
func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return translateWriteError(db.Create(appointment).Error)
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) BookedTimes(db *gorm.DB, timetableID int64) ([]time.Time, error) {
	var appointments []entity.Appointment
	err := db.Select("id", "slot_time").
		Where("timetable_id = ?", timetableID).
		Order("slot_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, len(appointments))
	for i, a := range appointments {
		times[i] = a.Time
	}
	return times, nil
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
