package dto

type HospitalRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Address      string   `json:"address"`
	ContactPhone string   `json:"contactPhone" validate:"max=50"`
	Rooms        []string `json:"rooms" validate:"dive,required,max=100"`
}

type HospitalResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	ContactPhone string   `json:"contactPhone"`
	Rooms        []string `json:"rooms"`
}
