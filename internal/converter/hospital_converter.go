package converter

import (
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
)

func HospitalToResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}

	rooms := []string(h.Rooms)
	if rooms == nil {
		rooms = []string{}
	}
	return &dto.HospitalResponse{
		ID:           h.ID,
		Name:         h.Name,
		Address:      h.Address,
		ContactPhone: h.ContactPhone,
		Rooms:        rooms,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i])
	}
	return responses
}
