package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mentorat/authoring/internal/authoring"
	"github.com/mentorat/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockFormationStore is a mock implementation of FormationStore
//
// When release is set, saves signal started and then wait on release.
type mockFormationStore struct {
	mu          sync.Mutex
	formation   *models.Formation
	saved       []*models.Formation
	autosaved   []*models.Formation
	published   []string
	loadErr     error
	saveErr     error
	autosaveErr error
	publishErr  error
	canonical   func(*models.Formation) *models.Formation
	started     chan struct{}
	release     chan struct{}
}

func (m *mockFormationStore) wait() {
	if m.release == nil {
		return
	}
	m.started <- struct{}{}
	<-m.release
}

func (m *mockFormationStore) LoadFormation(ctx context.Context, id string) (*models.Formation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.formation.Clone(), nil
}

func (m *mockFormationStore) SaveFormation(ctx context.Context, id string, formation *models.Formation) (*models.Formation, error) {
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = append(m.saved, formation.Clone())
	if m.canonical != nil {
		return m.canonical(formation.Clone()), nil
	}
	return formation.Clone(), nil
}

func (m *mockFormationStore) AutosaveFormation(ctx context.Context, id string, formation *models.Formation) error {
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.autosaveErr != nil {
		return m.autosaveErr
	}
	m.autosaved = append(m.autosaved, formation.Clone())
	return nil
}

func (m *mockFormationStore) PublishFormation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, id)
	return nil
}

func (m *mockFormationStore) counts() (saves, autosaves int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved), len(m.autosaved)
}

func newBlockingStore() *mockFormationStore {
	return &mockFormationStore{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

// setupTestAutosave wires an editor to a controller the way a session does
func setupTestAutosave(t *testing.T, store *mockFormationStore) (*authoring.Editor, *AutosaveController) {
	t.Helper()
	editor := authoring.NewEditor(&models.Formation{
		ID:      "f1",
		Modules: []models.Module{{ID: "m0", Chapters: []models.Chapter{{ID: "c0"}}}},
	})
	controller := NewAutosaveController("f1", store, editor.Snapshot, zap.NewNop())
	controller.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	editor.Subscribe(func(c authoring.Change) {
		controller.MarkDirty(c.Revision)
	})
	return editor, controller
}

func TestNewAutosaveController(t *testing.T) {
	_, controller := setupTestAutosave(t, &mockFormationStore{})

	assert.Equal(t, models.SaveStateIdle, controller.State())
	assert.Nil(t, controller.LastSavedAt())
}

func TestAutosaveController_TwoEditsOneAutosave(t *testing.T) {
	store := &mockFormationStore{}
	editor, controller := setupTestAutosave(t, store)

	_, err := editor.AddModule()
	require.NoError(t, err)
	_, err = editor.AddChapter("m0")
	require.NoError(t, err)
	assert.Equal(t, models.SaveStateDirty, controller.State())

	assert.True(t, controller.Tick(context.Background()))
	assert.False(t, controller.Tick(context.Background()))

	_, autosaves := store.counts()
	require.Equal(t, 1, autosaves)
	latest, _ := editor.Snapshot()
	assert.Equal(t, latest, store.autosaved[0], "the autosave carries the full latest snapshot")
	assert.Equal(t, models.SaveStateIdle, controller.State())
	require.NotNil(t, controller.LastSavedAt())
}

func TestAutosaveController_TickWhenIdle(t *testing.T) {
	store := &mockFormationStore{}
	_, controller := setupTestAutosave(t, store)

	assert.False(t, controller.Tick(context.Background()))

	saves, autosaves := store.counts()
	assert.Zero(t, saves)
	assert.Zero(t, autosaves)
}

func TestAutosaveController_AutosaveFailureStaysDirty(t *testing.T) {
	store := &mockFormationStore{autosaveErr: errors.New("connection refused")}
	editor, controller := setupTestAutosave(t, store)
	_, err := editor.AddModule()
	require.NoError(t, err)

	assert.True(t, controller.Tick(context.Background()))
	assert.Equal(t, models.SaveStateDirty, controller.State())
	assert.Nil(t, controller.LastSavedAt())

	store.mu.Lock()
	store.autosaveErr = nil
	store.mu.Unlock()

	assert.True(t, controller.Tick(context.Background()))
	assert.Equal(t, models.SaveStateIdle, controller.State())
	assert.NotNil(t, controller.LastSavedAt())
}

func TestAutosaveController_OneSaveInFlight(t *testing.T) {
	store := newBlockingStore()
	editor, controller := setupTestAutosave(t, store)
	_, err := editor.AddModule()
	require.NoError(t, err)

	done := make(chan bool)
	go func() {
		done <- controller.Tick(context.Background())
	}()
	<-store.started
	assert.Equal(t, models.SaveStateSaving, controller.State())

	// Neither an explicit save nor another tick may start while the first is in flight.
	result, err := controller.Save(context.Background())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, models.ErrSaveInProgress))
	assert.False(t, controller.Tick(context.Background()))

	// An edit during the save is applied and keeps the state Saving until it resolves.
	_, err = editor.AddModule()
	require.NoError(t, err)
	assert.Equal(t, models.SaveStateSaving, controller.State())

	close(store.release)
	assert.True(t, <-done)

	assert.Equal(t, models.SaveStateDirty, controller.State())
	assert.Nil(t, controller.LastSavedAt(), "a stale save must not look saved")
	_, autosaves := store.counts()
	assert.Equal(t, 1, autosaves)

	// The next tick carries the newer edit; release is closed so it does not block.
	assert.True(t, controller.Tick(context.Background()))
	assert.Equal(t, models.SaveStateIdle, controller.State())
	_, autosaves = store.counts()
	assert.Equal(t, 2, autosaves)
	assert.Len(t, store.autosaved[1].Modules, 3)
}

func TestAutosaveController_Save(t *testing.T) {
	tests := []struct {
		name          string
		saveErr       error
		edit          bool
		expectedState models.SaveState
		expectedError error
	}{
		{name: "from dirty", edit: true, expectedState: models.SaveStateIdle},
		{name: "from idle", edit: false, expectedState: models.SaveStateIdle},
		{
			name:          "store failure",
			edit:          true,
			saveErr:       errors.New("timeout"),
			expectedState: models.SaveStateDirty,
			expectedError: models.ErrPersistenceFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockFormationStore{saveErr: tt.saveErr}
			editor, controller := setupTestAutosave(t, store)
			if tt.edit {
				_, err := editor.AddModule()
				require.NoError(t, err)
			}

			result, err := controller.Save(context.Background())

			assert.Equal(t, tt.expectedState, controller.State())
			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, result)
				assert.Nil(t, controller.LastSavedAt())
				return
			}
			require.NoError(t, err)
			assert.False(t, result.Stale)
			assert.Equal(t, editor.Revision(), result.Revision)
			require.NotNil(t, result.SavedAt)
			assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), *result.SavedAt)
			assert.NotNil(t, result.Formation)
			saves, _ := store.counts()
			assert.Equal(t, 1, saves)
		})
	}
}

func TestAutosaveController_StaleExplicitSave(t *testing.T) {
	store := newBlockingStore()
	editor, controller := setupTestAutosave(t, store)
	_, err := editor.AddModule()
	require.NoError(t, err)

	type outcome struct {
		result *models.SaveResult
		err    error
	}
	done := make(chan outcome)
	go func() {
		result, err := controller.Save(context.Background())
		done <- outcome{result, err}
	}()
	<-store.started
	_, err = editor.AddChapter("m0")
	require.NoError(t, err)
	close(store.release)

	out := <-done
	require.NoError(t, out.err)
	assert.True(t, out.result.Stale)
	assert.Nil(t, out.result.SavedAt)
	assert.Equal(t, uint64(1), out.result.Revision)
	assert.Equal(t, models.SaveStateDirty, controller.State())
}

func TestAutosaveController_Flush(t *testing.T) {
	store := &mockFormationStore{}
	editor, controller := setupTestAutosave(t, store)

	require.NoError(t, controller.Flush(context.Background()))
	saves, _ := store.counts()
	assert.Zero(t, saves, "nothing to flush when idle")

	_, err := editor.AddModule()
	require.NoError(t, err)
	store.saveErr = errors.New("disk full")

	err = controller.Flush(context.Background())
	assert.True(t, errors.Is(err, models.ErrPersistenceFailure))
	assert.Equal(t, models.SaveStateError, controller.State())

	// Editing or saving again leaves the Error state.
	controller.MarkDirty(editor.Revision())
	assert.Equal(t, models.SaveStateDirty, controller.State())

	store.saveErr = nil
	require.NoError(t, controller.Flush(context.Background()))
	assert.Equal(t, models.SaveStateIdle, controller.State())
}

func TestAutosaveController_TickRetriesAfterFailedFlush(t *testing.T) {
	store := &mockFormationStore{}
	editor, controller := setupTestAutosave(t, store)

	_, err := editor.AddModule()
	require.NoError(t, err)
	store.saveErr = errors.New("disk full")
	store.autosaveErr = errors.New("disk full")
	require.Error(t, controller.Flush(context.Background()))
	require.Equal(t, models.SaveStateError, controller.State())

	// Still failing: the tick is attempted and the state is kept.
	assert.True(t, controller.Tick(context.Background()))
	assert.Equal(t, models.SaveStateError, controller.State())

	store.autosaveErr = nil
	assert.True(t, controller.Tick(context.Background()))
	assert.Equal(t, models.SaveStateIdle, controller.State())
	assert.NotNil(t, controller.LastSavedAt())
	_, autosaves := store.counts()
	assert.Equal(t, 1, autosaves)
	assert.False(t, controller.Tick(context.Background()))
}
