package models

import (
	"encoding/json"
	"time"
)

// SaveState represents the persistence state of an editing session
type SaveState string

const (
	SaveStateIdle   SaveState = "idle"
	SaveStateDirty  SaveState = "dirty"
	SaveStateSaving SaveState = "saving"
	SaveStateError  SaveState = "error"
)

// SessionStatus represents the persistence and publication status of an editing session
type SessionStatus struct {
	FormationID string            `json:"formationId"`
	State       SaveState         `json:"state"`
	Revision    uint64            `json:"revision"`
	LastSavedAt *time.Time        `json:"lastSavedAt,omitempty"`
	CanPublish  bool              `json:"canPublish"`
	Validation  *ValidationResult `json:"validation,omitempty"`
}

// SaveResult represents the outcome of an explicit save
type SaveResult struct {
	Formation  *Formation        `json:"formation"`
	Revision   uint64            `json:"revision"`
	SavedAt    *time.Time        `json:"savedAt,omitempty"`
	Stale      bool              `json:"stale"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// UpdateBlockRequest represents a request to update a content block (partial update)
//
// Data is merged key by key into the block payload. Markdown, when set on a text block,
// replaces htmlContent with its rendered HTML.
type UpdateBlockRequest struct {
	Title    *string                    `json:"title,omitempty" validate:"omitempty,max=255"`
	Required *bool                      `json:"required,omitempty"`
	Data     map[string]json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	Markdown *string                    `json:"markdown,omitempty"`
}

// AddBlockRequest represents a request to append a content block to a chapter
type AddBlockRequest struct {
	Type BlockType `json:"type" validate:"required" example:"quiz"`
}

// EditorView represents the edited tree together with the session status
type EditorView struct {
	Formation *Formation     `json:"formation"`
	Status    *SessionStatus `json:"status"`
}

// PublishResponse represents the outcome of a publish request
type PublishResponse struct {
	Published  bool              `json:"published"`
	Validation *ValidationResult `json:"validation,omitempty"`
}
