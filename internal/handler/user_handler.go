package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/service"
)

const maxEmailLength = 254

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Email string `json:"email"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidJSON, "invalid JSON in request body"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		writeError(w, errors.NewAppError(errors.ValidationError, "email is required"))
		return
	}
	if len(email) > maxEmailLength {
		writeError(w, errors.NewAppError(errors.ValidationError, "email must be 254 characters or less"))
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, errors.NewAppError(errors.ValidationError, "invalid email format"))
		return
	}

	user, err := h.userService.CreateUser(email)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			writeError(w, appErr)
		} else {
			writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
