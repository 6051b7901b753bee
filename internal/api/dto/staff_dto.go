package dto

import (
	"time"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// StaffLoginRequest payload.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffLoginResponse carries the issued token.
type StaffLoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	StaffID   string           `json:"staff_id"`
	Name      string           `json:"name"`
	Role      domain.StaffRole `json:"role"`
}
