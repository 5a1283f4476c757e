package dto

import "time"

type DocumentRequest struct {
	Date       time.Time `json:"date" validate:"required"`
	PatientID  int64     `json:"patientId" validate:"required,gt=0"`
	HospitalID int64     `json:"hospitalId" validate:"required,gt=0"`
	DoctorID   int64     `json:"doctorId" validate:"required,gt=0"`
	Room       string    `json:"room" validate:"required,max=100"`
	Data       string    `json:"data" validate:"required"`
}

type DocumentResponse struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	PatientID  int64     `json:"patientId"`
	HospitalID int64     `json:"hospitalId"`
	DoctorID   int64     `json:"doctorId"`
	Room       string    `json:"room"`
	Data       string    `json:"data"`
}
