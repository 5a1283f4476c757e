package repository

import (
	"time"

	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

// TimetableFilter selects timetables by owner. Zero-valued fields are ignored;
// From/To bound the window when set.
type TimetableFilter struct {
	HospitalID int64
	DoctorID   int64
	Room       string
	From       time.Time
	To         time.Time
}

type TimetableRepository interface {
	Create(db *gorm.DB, timetable *entity.Timetable) error
	Update(db *gorm.DB, timetable *entity.Timetable) error
	FindByID(db *gorm.DB, id int64) (*entity.Timetable, error)
	Find(db *gorm.DB, filter TimetableFilter) ([]entity.Timetable, error)
	// Delete removes the timetable together with its appointments.
	Delete(db *gorm.DB, id int64) (int64, error)
	DeleteWhere(db *gorm.DB, filter TimetableFilter) (int64, error)
}
