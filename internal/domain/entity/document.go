package entity

import "time"

// Document is a medical history record. References to other services are
// validated at write time only.
type Document struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Date       time.Time `gorm:"not null" json:"date"`
	PatientID  int64     `gorm:"not null;index" json:"patientId"`
	HospitalID int64     `gorm:"not null;index" json:"hospitalId"`
	DoctorID   int64     `gorm:"not null;index" json:"doctorId"`
	Room       string    `gorm:"type:varchar(100);not null" json:"room"`
	Data       string    `gorm:"type:text;not null" json:"data"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Document) TableName() string {
	return "documents"
}
