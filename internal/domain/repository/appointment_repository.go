package repository

import (
	"time"

	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// Create fails with ErrDuplicateKey when the slot is already taken.
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	BookedTimes(db *gorm.DB, timetableID int64) ([]time.Time, error)
	Delete(db *gorm.DB, id int64) (int64, error)
}
