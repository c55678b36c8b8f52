package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mentorat/authoring/internal/authoring"
	"github.com/mentorat/authoring/internal/models"
)

// FormationRepository writes parts of a stored formation without going through an editing session
type FormationRepository interface {
	// CreateModule appends a module to a stored formation
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation.
	// "seed" holds the fields of the new module.
	//
	// Returns the created module and an error if any.
	CreateModule(ctx context.Context, formationID string, seed *models.ModuleSeed) (*models.Module, error)
	// CreateChapter appends a chapter to a stored module of the formation
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation owning the module.
	// "moduleID" is the ID of the module.
	// "seed" holds the fields of the new chapter.
	//
	// Returns the created chapter and an error if any.
	CreateChapter(ctx context.Context, formationID, moduleID string, seed *models.ChapterSeed) (*models.Chapter, error)
	// UpdateChapterContent replaces the blocks of a stored chapter of the formation
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation owning the chapter.
	// "chapterID" is the ID of the chapter.
	// "blocks" is the new ordered content of the chapter.
	//
	// Returns an error if any.
	UpdateChapterContent(ctx context.Context, formationID, chapterID string, blocks []models.ContentBlock) error
	// DeleteChapter deletes a stored chapter of the formation and renumbers the chapters after it
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation owning the chapter.
	// "chapterID" is the ID of the chapter.
	//
	// Returns an error if any.
	DeleteChapter(ctx context.Context, formationID, chapterID string) error
}

// SessionRegistry tells whether a formation is being edited
type SessionRegistry interface {
	IsOpen(id string) bool
}

// FormationService exposes the persistence collaborator directly
//
// Writes are refused while an editing session is open on the formation, because the
// session's next snapshot save would overwrite them.
type FormationService struct {
	repo     FormationRepository
	sessions SessionRegistry
	newID    func() string
}

// NewFormationService creates a new formation service
func NewFormationService(repo FormationRepository, sessions SessionRegistry) *FormationService {
	return &FormationService{
		repo:     repo,
		sessions: sessions,
		newID:    func() string { return uuid.New().String() },
	}
}

func (s *FormationService) checkNoSession(formationID string) error {
	if s.sessions != nil && s.sessions.IsOpen(formationID) {
		return fmt.Errorf("%w: %s", models.ErrSessionActive, formationID)
	}
	return nil
}

// CreateModule appends a module to a stored formation
func (s *FormationService) CreateModule(ctx context.Context, formationID string, seed *models.ModuleSeed) (*models.Module, error) {
	if err := s.checkNoSession(formationID); err != nil {
		return nil, err
	}
	if seed.Title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrInvalidRequest)
	}
	return s.repo.CreateModule(ctx, formationID, seed)
}

// CreateChapter appends a chapter to a stored module of the formation
func (s *FormationService) CreateChapter(ctx context.Context, formationID, moduleID string, seed *models.ChapterSeed) (*models.Chapter, error) {
	if err := s.checkNoSession(formationID); err != nil {
		return nil, err
	}
	if seed.Title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrInvalidRequest)
	}
	return s.repo.CreateChapter(ctx, formationID, moduleID, seed)
}

// UpdateChapterContent replaces the blocks of a stored chapter
//
// Blocks are renumbered in the given order and blocks without an id get one. A block whose
// type is unknown rejects the whole update.
func (s *FormationService) UpdateChapterContent(ctx context.Context, formationID, chapterID string, blocks []models.ContentBlock) error {
	if err := s.checkNoSession(formationID); err != nil {
		return err
	}

	out := make([]models.ContentBlock, len(blocks))
	for i, block := range blocks {
		if !authoring.IsValidBlockType(block.Type) {
			return fmt.Errorf("block %d: %w: %q", i, models.ErrInvalidVariant, block.Type)
		}
		if block.ID == "" {
			block.ID = s.newID()
		}
		if block.Data == nil {
			data, err := authoring.DefaultData(block.Type)
			if err != nil {
				return err
			}
			block.Data = data
		}
		if block.Data.BlockType() != block.Type {
			return fmt.Errorf("block %d: %w: payload does not match type %q", i, models.ErrInvalidPatch, block.Type)
		}
		out[i] = block
	}
	authoring.Renumber(out)

	return s.repo.UpdateChapterContent(ctx, formationID, chapterID, out)
}

// DeleteChapter deletes a stored chapter
func (s *FormationService) DeleteChapter(ctx context.Context, formationID, chapterID string) error {
	if err := s.checkNoSession(formationID); err != nil {
		return err
	}
	return s.repo.DeleteChapter(ctx, formationID, chapterID)
}
