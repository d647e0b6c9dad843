package models

import (
	"encoding/json"
	"time"
)

// Module is an ordered section of a course
type Module struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"courseId"`
	OwnerID     int       `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Visible     bool      `json:"visible"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateModuleRequest represents a request to add a module to a course
type CreateModuleRequest struct {
	Title       string `json:"title" example:"Getting started"`
	Description string `json:"description" example:"Tooling and setup"`
	Visible     *bool  `json:"visible,omitempty"`
}

// UpdateModuleRequest represents a partial module update
type UpdateModuleRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Visible     *bool   `json:"visible,omitempty"`
}

// MoveRequest asks for a one-step move ("up"/"down") or a move to Position.
// Position is kept raw so malformed values can fall back to the first slot.
type MoveRequest struct {
	Direction string          `json:"direction,omitempty" example:"up"`
	Position  json.RawMessage `json:"position,omitempty" swaggertype:"integer" example:"2"`
}

// VisibilityResponse reports the visibility after a toggle
type VisibilityResponse struct {
	Visible bool `json:"visible"`
}
