package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/mentorat/authoring/internal/models"
)

// FormationValidator is the external rule checker
type FormationValidator interface {
	// ValidateFormation checks the persisted formation against the publication rules
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	//
	// Returns the errors and warnings found and an error if any.
	ValidateFormation(ctx context.Context, id string) (*models.ValidationResult, error)
}

// FormationPublisher makes a formation visible to learners
type FormationPublisher interface {
	// PublishFormation marks the formation as published
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	//
	// Returns an error if any.
	PublishFormation(ctx context.Context, id string) error
}

// ValidationGate keeps the latest validation result of a formation and gates publication on it
type ValidationGate struct {
	mu        sync.RWMutex
	validator FormationValidator
	publisher FormationPublisher
	latest    *models.ValidationResult
}

// NewValidationGate creates a gate with no result yet; publication is closed until a refresh
func NewValidationGate(validator FormationValidator, publisher FormationPublisher) *ValidationGate {
	return &ValidationGate{
		validator: validator,
		publisher: publisher,
	}
}

// Refresh asks the validator for a new result and caches it
func (g *ValidationGate) Refresh(ctx context.Context, id string) (*models.ValidationResult, error) {
	result, err := g.validator.ValidateFormation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to validate formation: %w", err)
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}

	g.mu.Lock()
	g.latest = result
	g.mu.Unlock()
	return result, nil
}

// Latest returns the cached result, or nil before the first refresh
func (g *ValidationGate) Latest() *models.ValidationResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.latest
}

// CanPublish reports whether the cached result has no errors
func (g *ValidationGate) CanPublish() bool {
	return g.Latest().CanPublish()
}

// Publish re-validates the formation and publishes it when no error remains
//
// Warnings never block. When errors exist the publisher is not called and the error wraps
// ErrValidationBlocked.
func (g *ValidationGate) Publish(ctx context.Context, id string) (*models.ValidationResult, error) {
	result, err := g.Refresh(ctx, id)
	if err != nil {
		return nil, err
	}
	if !result.CanPublish() {
		return result, fmt.Errorf("%w: %d error(s)", models.ErrValidationBlocked, len(result.Errors))
	}
	if err := g.publisher.PublishFormation(ctx, id); err != nil {
		return result, fmt.Errorf("%w: %v", models.ErrPersistenceFailure, err)
	}
	return result, nil
}
