package converter

import (
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
)

func TimetableToResponse(t *entity.Timetable) *dto.TimetableResponse {
	if t == nil {
		return nil
	}

	return &dto.TimetableResponse{
		ID:         t.ID,
		HospitalID: t.HospitalID,
		DoctorID:   t.DoctorID,
		From:       t.From.UTC(),
		To:         t.To.UTC(),
		Room:       t.Room,
	}
}

func TimetablesToResponses(timetables []entity.Timetable) []dto.TimetableResponse {
	responses := make([]dto.TimetableResponse, len(timetables))
	for i := range timetables {
		responses[i] = *TimetableToResponse(&timetables[i])
	}
	return responses
}

func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          a.ID,
		TimetableID: a.TimetableID,
		PatientID:   a.PatientID,
		Time:        a.Time.UTC(),
	}
}
