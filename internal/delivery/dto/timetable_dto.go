package dto

import "time"

// TimetableRequest describes a working window. From and To are RFC 3339
// instants on :00 or :30.
type TimetableRequest struct {
	HospitalID int64     `json:"hospitalId" validate:"required,gt=0"`
	DoctorID   int64     `json:"doctorId" validate:"required,gt=0"`
	From       time.Time `json:"from" validate:"required,halfhour"`
	To         time.Time `json:"to" validate:"required,halfhour"`
	Room       string    `json:"room" validate:"required,max=100"`
}

type TimetableResponse struct {
	ID         int64     `json:"id"`
	HospitalID int64     `json:"hospitalId"`
	DoctorID   int64     `json:"doctorId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Room       string    `json:"room"`
}

type AppointmentRequest struct {
	Time time.Time `json:"time" validate:"required,halfhour"`
}

type AppointmentResponse struct {
	ID          int64     `json:"id"`
	TimetableID int64     `json:"timetableId"`
	PatientID   int64     `json:"patientId"`
	Time        time.Time `json:"time"`
}
