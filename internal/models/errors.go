package models

import "errors"

// Structural errors, local to the editor
var (
	// ErrNotFound indicates that a path or id does not address an existing node.
	ErrNotFound = errors.New("not found")

	// ErrInvalidVariant indicates a block type outside the registry.
	ErrInvalidVariant = errors.New("invalid block variant")

	// ErrInvalidPatch indicates a patch value that cannot be decoded into the block shape.
	ErrInvalidPatch = errors.New("invalid patch")

	// ErrInvalidRequest indicates request fields that fail validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// Collaborator errors
var (
	// ErrPersistenceFailure indicates that a load or save against the store failed.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrValidationBlocked indicates a publish attempt while validation errors exist.
	ErrValidationBlocked = errors.New("publication blocked by validation errors")

	// ErrUploadFailure indicates that a media upload for a block failed.
	ErrUploadFailure = errors.New("upload failure")

	// ErrSaveInProgress indicates that an explicit save was requested while another save is in flight.
	ErrSaveInProgress = errors.New("a save is already in progress")

	// ErrSessionClosed indicates an operation on a session that has been closed.
	ErrSessionClosed = errors.New("editing session closed")

	// ErrSessionActive indicates a direct write to a formation that has an open editing session.
	ErrSessionActive = errors.New("formation has an open editing session")
)
