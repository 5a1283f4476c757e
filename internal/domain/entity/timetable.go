package entity

import (
	"iter"
	"time"

	"clinic-services/pkg/slot"
)

// Timetable is a doctor's working window in one hospital room.
type Timetable struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HospitalID int64     `gorm:"not null;index" json:"hospitalId"`
	DoctorID   int64     `gorm:"not null;index" json:"doctorId"`
	From       time.Time `gorm:"column:from_time;not null;index" json:"from"`
	To         time.Time `gorm:"column:to_time;not null" json:"to"`
	Room       string    `gorm:"type:varchar(100);not null" json:"room"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Appointments []Appointment `gorm:"foreignKey:TimetableID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Timetable) TableName() string {
	return "timetables"
}

// Slots yields every bookable instant of the window, booked or not.
func (t *Timetable) Slots() iter.Seq[time.Time] {
	return slot.Enumerate(t.From, t.To)
}

// Contains reports whether at lies inside the closed window.
func (t *Timetable) Contains(at time.Time) bool {
	return slot.Within(t.From, t.To, at)
}
