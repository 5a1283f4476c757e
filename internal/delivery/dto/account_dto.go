package dto

// Request DTOs

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"max=150"`
	LastName  string `json:"lastName" validate:"max=150"`
	Password  string `json:"password" validate:"required,max=128"`
}

// AccountRequest is used by administrators to create or edit any account.
type AccountRequest struct {
	Username  string   `json:"username" validate:"required,max=150"`
	Password  string   `json:"password" validate:"required,max=128"`
	FirstName string   `json:"firstName" validate:"max=150"`
	LastName  string   `json:"lastName" validate:"max=150"`
	Roles     []string `json:"roles" validate:"omitempty,dive,role"`
}

// Response DTOs

type UserResponse struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type DoctorResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
