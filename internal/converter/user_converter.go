package converter

import (
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/permission"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles.Strings(),
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func UserToDoctorResponse(user *entity.User) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func UsersToDoctorResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = UserToDoctorResponse(&users[i])
	}
	return responses
}

// UserToPrincipal builds the authenticated caller from a stored user.
func UserToPrincipal(user *entity.User) *permission.Principal {
	return &permission.Principal{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles,
	}
}

func PrincipalToResponse(p *permission.Principal) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Roles:     p.Roles.Strings(),
	}
}
