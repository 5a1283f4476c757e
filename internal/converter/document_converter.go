package converter

import (
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
)

func DocumentToResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}

	return &dto.DocumentResponse{
		ID:         d.ID,
		Date:       d.Date.UTC(),
		PatientID:  d.PatientID,
		HospitalID: d.HospitalID,
		DoctorID:   d.DoctorID,
		Room:       d.Room,
		Data:       d.Data,
	}
}

func DocumentsToResponses(documents []entity.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = *DocumentToResponse(&documents[i])
	}
	return responses
}
