package api

import "time"

type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SavePageRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Summary   string `json:"summary" validate:"max=500"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type Event struct {
	Type       string            `json:"type" validate:"required,oneof=page_view interaction"`
	Path       string            `json:"path" validate:"required_if=Type page_view,max=2048"`
	Name       string            `json:"name" validate:"required_if=Type interaction,max=200"`
	SessionID  string            `json:"session_id,omitempty" validate:"max=64"`
	Properties map[string]string `json:"properties,omitempty" validate:"max=32"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Error struct {
	Error string `json:"error"`
}
