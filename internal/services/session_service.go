package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mentorat/authoring/internal/authoring"
	"github.com/mentorat/authoring/internal/models"
	"go.uber.org/zap"
)

// FormationStore is the persistence collaborator of editing sessions
type FormationStore interface {
	SnapshotStore
	FormationPublisher
	// LoadFormation retrieves a formation with its whole tree
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	//
	// If the formation does not exist, the error wraps models.ErrNotFound.
	//
	// Returns the formation and an error if any.
	LoadFormation(ctx context.Context, id string) (*models.Formation, error)
}

// SessionService opens, tracks and closes editing sessions
type SessionService struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	store     FormationStore
	validator FormationValidator
	uploader  MediaUploader
	markdown  *MarkdownRenderer
	logger    *zap.Logger
	newID     func() string
}

// NewSessionService creates a new session service
func NewSessionService(store FormationStore, validator FormationValidator, uploader MediaUploader, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:  make(map[string]*Session),
		store:     store,
		validator: validator,
		uploader:  uploader,
		markdown:  NewMarkdownRenderer(),
		logger:    logger,
		newID:     func() string { return uuid.New().String() },
	}
}

func (s *SessionService) register(f *models.Formation) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[f.ID]; ok {
		return existing
	}
	session := newSession(f, s.store, s.validator, s.uploader, s.markdown, s.logger, authoring.WithIDGenerator(s.newID))
	s.sessions[f.ID] = session
	return session
}

// Create creates a draft formation with one module and one chapter, stores it and opens a session on it
func (s *SessionService) Create(ctx context.Context, req *models.CreateFormationRequest) (*Session, error) {
	if err := validateCreateFormationRequest(req); err != nil {
		return nil, err
	}

	f := authoring.NewFormation(s.newID(), req, s.newID)
	saved, err := s.store.SaveFormation(ctx, f.ID, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailure, err)
	}

	session := s.register(saved)
	if _, err := session.Validate(ctx); err != nil {
		s.logger.Warn("initial validation failed", zap.String("formation_id", saved.ID), zap.Error(err))
	}
	s.logger.Info("formation created", zap.String("formation_id", saved.ID))
	return session, nil
}

// Open loads a formation and opens a session on it
//
// An already open session is returned as is.
func (s *SessionService) Open(ctx context.Context, id string) (*Session, error) {
	if session, err := s.Get(id); err == nil {
		return session, nil
	}

	f, err := s.store.LoadFormation(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailure, err)
	}

	session := s.register(f)
	if _, err := session.Validate(ctx); err != nil {
		s.logger.Warn("initial validation failed", zap.String("formation_id", id), zap.Error(err))
	}
	return session, nil
}

// Get returns the open session of a formation
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: no open session for formation %q", models.ErrNotFound, id)
	}
	return session, nil
}

// IsOpen reports whether a session is open on the formation
func (s *SessionService) IsOpen(id string) bool {
	_, err := s.Get(id)
	return err == nil
}

// Close flushes and closes the session of a formation
//
// When the final save fails the session stays registered in the Error state.
func (s *SessionService) Close(ctx context.Context, id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := session.Close(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.sessions[id] == session {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	s.logger.Info("editing session closed", zap.String("formation_id", id))
	return nil
}

// CloseAll closes every open session and returns the joined errors
func (s *SessionService) CloseAll(ctx context.Context) error {
	var errs []error
	for _, session := range s.list() {
		if err := s.Close(ctx, session.ID()); err != nil {
			errs = append(errs, fmt.Errorf("formation %s: %w", session.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// TickAll runs one autosave cycle on every open session and returns how many saves were attempted
func (s *SessionService) TickAll(ctx context.Context) int {
	attempted := 0
	for _, session := range s.list() {
		if session.Tick(ctx) {
			attempted++
		}
	}
	return attempted
}

func (s *SessionService) list() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

func validateCreateFormationRequest(req *models.CreateFormationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", models.ErrInvalidRequest)
	}
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrInvalidRequest)
	}
	switch req.Level {
	case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
	default:
		return fmt.Errorf("%w: invalid level %q", models.ErrInvalidRequest, req.Level)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", models.ErrInvalidRequest)
	}
	return nil
}
