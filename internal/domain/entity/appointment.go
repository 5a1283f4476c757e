package entity

import "time"

// Appointment occupies one slot of a timetable. The pair (TimetableID, Time)
// is unique at the storage level.
type Appointment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TimetableID int64     `gorm:"not null;uniqueIndex:idx_appointment_slot" json:"timetableId"`
	PatientID   int64     `gorm:"not null;index" json:"patientId"`
	Time        time.Time `gorm:"column:slot_time;not null;uniqueIndex:idx_appointment_slot" json:"time"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}
