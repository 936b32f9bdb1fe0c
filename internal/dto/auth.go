package dto

import "github.com/maximiza-sistemas/edu-backend/internal/model"

// ── auth ──

// LoginRequest credentials. Presence is checked by the service so the
// error message stays specific.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token plus the public user.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
