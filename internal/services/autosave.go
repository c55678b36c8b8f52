package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mentorat/authoring/internal/models"
	"go.uber.org/zap"
)

// SnapshotFunc returns a complete copy of the edited tree and the revision it reflects
type SnapshotFunc func() (*models.Formation, uint64)

// SnapshotStore is the persistence side used by the autosave controller
type SnapshotStore interface {
	// SaveFormation overwrites the stored formation with a full snapshot
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	// "formation" is the complete snapshot to store.
	//
	// Returns the canonical persisted form and an error if any.
	SaveFormation(ctx context.Context, id string, formation *models.Formation) (*models.Formation, error)
	// AutosaveFormation stores a full snapshot on a best-effort basis
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	// "formation" is the complete snapshot to store.
	//
	// Returns an error if any.
	AutosaveFormation(ctx context.Context, id string, formation *models.Formation) error
}

// AutosaveController tracks unsaved edits of one formation and persists them
//
// The controller moves between Idle, Dirty, Saving and Error. At most one save is in flight.
// A save is accepted, that is the state returns to Idle and the time is recorded, only when
// no mutation newer than the saved revision arrived while it was in flight.
type AutosaveController struct {
	mu          sync.Mutex
	formationID string
	store       SnapshotStore
	snapshot    SnapshotFunc
	logger      *zap.Logger
	now         func() time.Time

	state         models.SaveState
	revision      uint64
	savedRevision uint64
	lastSavedAt   *time.Time
}

// NewAutosaveController creates a controller in the Idle state
func NewAutosaveController(formationID string, store SnapshotStore, snapshot SnapshotFunc, logger *zap.Logger) *AutosaveController {
	return &AutosaveController{
		formationID: formationID,
		store:       store,
		snapshot:    snapshot,
		logger:      logger,
		now:         time.Now,
		state:       models.SaveStateIdle,
	}
}

// MarkDirty records that the tree reached revision rev
func (c *AutosaveController) MarkDirty(rev uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rev > c.revision {
		c.revision = rev
	}
	if c.state == models.SaveStateIdle || c.state == models.SaveStateError {
		c.state = models.SaveStateDirty
	}
}

// State returns the current persistence state
func (c *AutosaveController) State() models.SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastSavedAt returns the time of the last accepted save, or nil if none was accepted yet
func (c *AutosaveController) LastSavedAt() *time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastSavedAt == nil {
		return nil
	}
	t := *c.lastSavedAt
	return &t
}

// begin moves the controller to Saving if allowed and returns the state it left
func (c *AutosaveController) begin(allowed ...models.SaveState) (models.SaveState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range allowed {
		if c.state == s {
			c.state = models.SaveStateSaving
			return s, true
		}
	}
	return c.state, false
}

// settle records a successful save of revision rev and reports whether it was accepted
func (c *AutosaveController) settle(rev uint64) (bool, *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rev > c.savedRevision {
		c.savedRevision = rev
	}
	if c.revision > rev {
		c.state = models.SaveStateDirty
		return false, nil
	}
	now := c.now()
	c.lastSavedAt = &now
	c.state = models.SaveStateIdle
	return true, &now
}

func (c *AutosaveController) fail(next models.SaveState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next
}

// Tick runs one autosave cycle
//
// Nothing happens unless the controller is Dirty or Error, both of which hold unsaved edits.
// A failed autosave is logged and the state goes back to what it was so the next tick retries.
// Tick reports whether a save was attempted.
func (c *AutosaveController) Tick(ctx context.Context) bool {
	from, ok := c.begin(models.SaveStateDirty, models.SaveStateError)
	if !ok {
		return false
	}

	formation, rev := c.snapshot()
	if err := c.store.AutosaveFormation(ctx, c.formationID, formation); err != nil {
		c.fail(from)
		c.logger.Warn("autosave failed",
			zap.String("formation_id", c.formationID),
			zap.Uint64("revision", rev),
			zap.Error(err),
		)
		return true
	}

	if accepted, _ := c.settle(rev); !accepted {
		c.logger.Debug("autosave response is stale",
			zap.String("formation_id", c.formationID),
			zap.Uint64("revision", rev),
		)
	}
	return true
}

// Save persists the current snapshot immediately
//
// It is allowed from Idle, Dirty and Error and returns ErrSaveInProgress while another save is
// in flight. On failure the controller is Dirty and the error wraps ErrPersistenceFailure.
func (c *AutosaveController) Save(ctx context.Context) (*models.SaveResult, error) {
	return c.save(ctx, models.SaveStateDirty)
}

// Flush saves pending edits, if any, before the session ends
//
// When the final save fails the controller enters the Error state.
func (c *AutosaveController) Flush(ctx context.Context) error {
	if c.State() == models.SaveStateIdle {
		return nil
	}
	_, err := c.save(ctx, models.SaveStateError)
	return err
}

func (c *AutosaveController) save(ctx context.Context, onFailure models.SaveState) (*models.SaveResult, error) {
	if _, ok := c.begin(models.SaveStateIdle, models.SaveStateDirty, models.SaveStateError); !ok {
		return nil, models.ErrSaveInProgress
	}

	formation, rev := c.snapshot()
	saved, err := c.store.SaveFormation(ctx, c.formationID, formation)
	if err != nil {
		c.fail(onFailure)
		c.logger.Error("failed to save formation",
			zap.String("formation_id", c.formationID),
			zap.Uint64("revision", rev),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailure, err)
	}

	accepted, savedAt := c.settle(rev)
	return &models.SaveResult{
		Formation: saved,
		Revision:  rev,
		SavedAt:   savedAt,
		Stale:     !accepted,
	}, nil
}
