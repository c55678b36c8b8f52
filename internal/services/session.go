package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mentorat/authoring/internal/authoring"
	"github.com/mentorat/authoring/internal/models"
	"go.uber.org/zap"
)

// MediaUploader stores files for media blocks
type MediaUploader interface {
	// UploadFile uploads a file to the media service
	//
	// "ctx" is the context for the request.
	// "file" is the content of the file.
	// "filename" is the original name of the file.
	// "kind" is the media category of the file.
	//
	// Returns the stored file description and an error if any.
	UploadFile(ctx context.Context, file io.Reader, filename string, kind models.UploadKind) (*models.UploadResult, error)
}

// Session is one editing session of a formation
//
// Tree operations are serialized by the session lock. Saves, validation and uploads run
// outside it, so edits keep being accepted while they are in flight.
type Session struct {
	mu          sync.Mutex
	id          string
	editor      *authoring.Editor
	autosave    *AutosaveController
	gate        *ValidationGate
	uploader    MediaUploader
	markdown    *MarkdownRenderer
	logger      *zap.Logger
	closed      bool
	unsubscribe func()
}

func newSession(f *models.Formation, store FormationStore, validator FormationValidator, uploader MediaUploader, markdown *MarkdownRenderer, logger *zap.Logger, opts ...authoring.EditorOption) *Session {
	s := &Session{
		id:       f.ID,
		editor:   authoring.NewEditor(f, opts...),
		gate:     NewValidationGate(validator, store),
		uploader: uploader,
		markdown: markdown,
		logger:   logger.With(zap.String("formation_id", f.ID)),
	}
	s.autosave = NewAutosaveController(f.ID, store, s.snapshot, s.logger)
	s.unsubscribe = s.editor.Subscribe(func(c authoring.Change) {
		s.autosave.MarkDirty(c.Revision)
	})
	return s
}

// ID returns the ID of the edited formation
func (s *Session) ID() string {
	return s.id
}

func (s *Session) snapshot() (*models.Formation, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot()
}

// edit runs fn under the session lock
func (s *Session) edit(fn func(e *authoring.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ErrSessionClosed
	}
	return fn(s.editor)
}

// Formation returns a snapshot of the edited tree
func (s *Session) Formation() *models.Formation {
	f, _ := s.snapshot()
	return f
}

// Status returns the persistence and publication status of the session
func (s *Session) Status() *models.SessionStatus {
	_, rev := s.snapshot()
	return &models.SessionStatus{
		FormationID: s.id,
		State:       s.autosave.State(),
		Revision:    rev,
		LastSavedAt: s.autosave.LastSavedAt(),
		CanPublish:  s.gate.CanPublish(),
		Validation:  s.gate.Latest(),
	}
}

// Estimate returns durations suggested by the current content
func (s *Session) Estimate() models.DurationEstimate {
	return authoring.EstimateDurations(s.Formation())
}

// UpdateFormation updates the formation header
func (s *Session) UpdateFormation(req *models.UpdateFormationRequest) error {
	return s.edit(func(e *authoring.Editor) error {
		return e.UpdateFormation(req)
	})
}

// AddModule appends a module to the formation
func (s *Session) AddModule() (*models.Module, error) {
	var module models.Module
	err := s.edit(func(e *authoring.Editor) error {
		var err error
		module, err = e.AddModule()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// AddChapter appends a chapter to a module
func (s *Session) AddChapter(moduleID string) (*models.Chapter, error) {
	var chapter models.Chapter
	err := s.edit(func(e *authoring.Editor) error {
		var err error
		chapter, err = e.AddChapter(moduleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// AddBlock appends a block with default content to a chapter
func (s *Session) AddBlock(moduleID, chapterID string, t models.BlockType) (*models.ContentBlock, error) {
	var block models.ContentBlock
	err := s.edit(func(e *authoring.Editor) error {
		var err error
		block, err = e.AddBlock(moduleID, chapterID, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// UpdateModule updates a module
func (s *Session) UpdateModule(moduleID string, req *models.UpdateModuleRequest) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateModule(moduleID)
		if err != nil {
			return err
		}
		return e.UpdateModule(p, req)
	})
}

// UpdateChapter updates a chapter
func (s *Session) UpdateChapter(moduleID, chapterID string, req *models.UpdateChapterRequest) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateChapter(moduleID, chapterID)
		if err != nil {
			return err
		}
		return e.UpdateChapter(p, req)
	})
}

// UpdateBlock merges a patch into a block
//
// When Markdown is set the block must be a text block; its rendered HTML replaces htmlContent.
func (s *Session) UpdateBlock(blockID string, req *models.UpdateBlockRequest) (*models.ContentBlock, error) {
	patch := authoring.BlockPatch{
		Title:    req.Title,
		Required: req.Required,
		Data:     req.Data,
	}

	var rendered string
	if req.Markdown != nil {
		html, err := s.markdown.Render(*req.Markdown)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidPatch, err)
		}
		rendered = html
	}

	var block models.ContentBlock
	err := s.edit(func(e *authoring.Editor) error {
		if req.Markdown != nil {
			p, err := e.LocateBlock(blockID)
			if err != nil {
				return err
			}
			current, err := e.Block(p)
			if err != nil {
				return err
			}
			if current.Type != models.BlockTypeText {
				return fmt.Errorf("%w: markdown is only accepted by text blocks", models.ErrInvalidPatch)
			}
			raw, err := json.Marshal(rendered)
			if err != nil {
				return err
			}
			data := make(map[string]json.RawMessage, len(patch.Data)+1)
			for k, v := range patch.Data {
				data[k] = v
			}
			data["htmlContent"] = raw
			patch.Data = data
		}

		p, err := e.UpdateBlockByID(blockID, patch)
		if err != nil {
			return err
		}
		block, err = e.Block(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// DeleteModule removes a module
func (s *Session) DeleteModule(moduleID string) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateModule(moduleID)
		if err != nil {
			return err
		}
		return e.Delete(p)
	})
}

// DeleteChapter removes a chapter
func (s *Session) DeleteChapter(moduleID, chapterID string) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateChapter(moduleID, chapterID)
		if err != nil {
			return err
		}
		return e.Delete(p)
	})
}

// DeleteBlock removes a block
func (s *Session) DeleteBlock(blockID string) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateBlock(blockID)
		if err != nil {
			return err
		}
		return e.Delete(p)
	})
}

// MoveModule moves a module to index target
func (s *Session) MoveModule(moduleID string, target int) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateModule(moduleID)
		if err != nil {
			return err
		}
		_, err = e.Move(p, target)
		return err
	})
}

// MoveChapter moves a chapter inside its module, or to the end of another module when
// req.TargetModuleID names a different module
func (s *Session) MoveChapter(moduleID, chapterID string, req *models.MoveRequest) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateChapter(moduleID, chapterID)
		if err != nil {
			return err
		}
		if req.TargetModuleID != "" && req.TargetModuleID != moduleID {
			_, err = e.MoveChapterTo(p, req.TargetModuleID)
			return err
		}
		_, err = e.Move(p, req.Target)
		return err
	})
}

// MoveBlock moves a block inside its chapter, or to the end of another chapter when
// req.TargetChapterID is set
func (s *Session) MoveBlock(blockID string, req *models.MoveRequest) error {
	return s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateBlock(blockID)
		if err != nil {
			return err
		}
		if req.TargetChapterID != "" {
			tp, err := e.LocateChapter(req.TargetModuleID, req.TargetChapterID)
			if err != nil {
				return err
			}
			if tp[0] != p[0] || tp[1] != p[1] {
				_, err = e.MoveBlockTo(p, req.TargetModuleID, req.TargetChapterID)
				return err
			}
		}
		_, err = e.Move(p, req.Target)
		return err
	})
}

// Tick runs one autosave cycle
func (s *Session) Tick(ctx context.Context) bool {
	return s.autosave.Tick(ctx)
}

// Save persists the tree now and re-runs validation
//
// When the save is accepted the tree adopts the canonical form returned by the store. A
// validation failure after a successful save is logged and leaves Validation empty.
func (s *Session) Save(ctx context.Context) (*models.SaveResult, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, models.ErrSessionClosed
	}

	result, err := s.autosave.Save(ctx)
	if err != nil {
		return nil, err
	}

	if !result.Stale && result.Formation != nil {
		s.mu.Lock()
		if s.editor.Revision() == result.Revision {
			s.editor.Replace(result.Formation)
		}
		s.mu.Unlock()
	}

	validation, err := s.gate.Refresh(ctx, s.id)
	if err != nil {
		s.logger.Warn("validation after save failed", zap.Error(err))
	}
	result.Validation = validation
	return result, nil
}

// Validate re-runs validation against the persisted formation
func (s *Session) Validate(ctx context.Context) (*models.ValidationResult, error) {
	return s.gate.Refresh(ctx, s.id)
}

// Publish saves pending edits, then publishes the formation if validation reports no error
func (s *Session) Publish(ctx context.Context) (*models.ValidationResult, error) {
	if s.autosave.State() != models.SaveStateIdle {
		if _, err := s.Save(ctx); err != nil {
			return nil, err
		}
	}
	result, err := s.gate.Publish(ctx, s.id)
	if err != nil {
		return result, err
	}
	s.logger.Info("formation published")
	return result, nil
}

// uploadKinds maps block types that carry a media file to the upload category
var uploadKinds = map[models.BlockType]models.UploadKind{
	models.BlockTypeImage: models.UploadKindImage,
	models.BlockTypeVideo: models.UploadKindVideo,
	models.BlockTypeAudio: models.UploadKindAudio,
	models.BlockTypeFile:  models.UploadKindDocument,
}

// UploadBlockMedia uploads a file and stores its location in the block's payload
//
// Only the block's payload changes. A failed upload leaves the block untouched and wraps
// ErrUploadFailure. If the block was deleted while the upload ran, ErrNotFound is returned.
// Two uploads for the same block resolve last-writer-wins.
func (s *Session) UploadBlockMedia(ctx context.Context, blockID string, file io.Reader, filename string) (*models.ContentBlock, error) {
	var kind models.UploadKind
	err := s.edit(func(e *authoring.Editor) error {
		p, err := e.LocateBlock(blockID)
		if err != nil {
			return err
		}
		block, err := e.Block(p)
		if err != nil {
			return err
		}
		k, ok := uploadKinds[block.Type]
		if !ok {
			return fmt.Errorf("%w: %q blocks do not accept files", models.ErrInvalidVariant, block.Type)
		}
		kind = k
		return nil
	})
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.UploadFile(ctx, file, filename, kind)
	if err != nil {
		s.logger.Warn("block upload failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrUploadFailure, err)
	}

	data, err := uploadPatch(kind, uploaded)
	if err != nil {
		return nil, err
	}

	var block models.ContentBlock
	err = s.edit(func(e *authoring.Editor) error {
		p, err := e.UpdateBlockByID(blockID, authoring.BlockPatch{Data: data})
		if err != nil {
			return err
		}
		block, err = e.Block(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func uploadPatch(kind models.UploadKind, uploaded *models.UploadResult) (map[string]json.RawMessage, error) {
	fields := map[string]any{"url": uploaded.URL}
	if kind == models.UploadKindDocument {
		fields["filename"] = uploaded.Filename
		fields["size"] = uploaded.Size
	}
	data := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode upload result: %w", err)
		}
		data[k] = raw
	}
	return data, nil
}

// Close stops accepting edits and flushes pending changes
//
// If the final save fails the session is reopened in the Error state so the close can be retried.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.ErrSessionClosed
	}
	s.closed = true
	s.mu.Unlock()

	if err := s.autosave.Flush(ctx); err != nil {
		s.mu.Lock()
		s.closed = false
		s.mu.Unlock()
		return err
	}
	s.unsubscribe()
	return nil
}
