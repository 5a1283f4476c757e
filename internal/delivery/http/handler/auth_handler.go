package handler

import (
	"net/http"

	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/response"
	"clinic-services/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// SignUp registers a new account with the base role
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.authUsecase.SignUp(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register user")
		return
	}

	response.Created(w, user)
}

// SignIn issues an access/refresh token pair
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.SignIn(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to sign in")
		return
	}

	response.OK(w, tokens)
}

// SignOut invalidates every token issued to the caller
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.authUsecase.SignOut(r.Context(), principal); err != nil {
		writeError(w, err, "Failed to sign out")
		return
	}

	response.OK(w, struct{}{})
}

func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("accessToken")
	if token == "" {
		token = r.URL.Query().Get("access_token")
	}
	if token == "" {
		response.BadRequest(w, "accessToken query parameter is required")
		return
	}

	principal, err := h.authUsecase.Validate(r.Context(), token)
	if err != nil {
		if err == usecase.ErrUserDeleted {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}
		writeError(w, err, "Failed to validate token")
		return
	}

	response.OK(w, converter.PrincipalToResponse(principal))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.Refresh(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to refresh token")
		return
	}

	response.OK(w, tokens)
}
