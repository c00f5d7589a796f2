package handler

import "github.com/syncspace/edge-gateway/internal/core/domain"

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Gender    string `json:"gender"    validate:"omitempty,oneof=male female other"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	// Redirect is the view the client should navigate to once it has shown
	// the confirmation.
	Redirect string `json:"redirect"`
}

type loginResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
