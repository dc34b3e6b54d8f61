package session

import "time"

type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type StatusResponse struct {
	Authenticated bool       `json:"authenticated"`
	SessionID     string     `json:"sessionId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}
