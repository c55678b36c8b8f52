package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mentorat/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFormationRepository is a mock implementation of FormationRepository
type mockFormationRepository struct {
	module          *models.Module
	chapter         *models.Chapter
	blocks          []models.ContentBlock
	deletedChapter  string
	contentChapter  string
	chapterModuleID string
	// owners maps module and chapter ids to their formation, when set
	owners map[string]string
	err    error
}

func (m *mockFormationRepository) owned(formationID, nodeID string) error {
	if m.owners != nil && m.owners[nodeID] != formationID {
		return fmt.Errorf("%w: %s", models.ErrNotFound, nodeID)
	}
	return nil
}

func (m *mockFormationRepository) CreateModule(ctx context.Context, formationID string, seed *models.ModuleSeed) (*models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.module = &models.Module{ID: "new-module", Title: seed.Title, Chapters: []models.Chapter{}}
	return m.module, nil
}

func (m *mockFormationRepository) CreateChapter(ctx context.Context, formationID, moduleID string, seed *models.ChapterSeed) (*models.Chapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := m.owned(formationID, moduleID); err != nil {
		return nil, err
	}
	m.chapterModuleID = moduleID
	m.chapter = &models.Chapter{ID: "new-chapter", Title: seed.Title, Required: seed.Required, Blocks: []models.ContentBlock{}}
	return m.chapter, nil
}

func (m *mockFormationRepository) UpdateChapterContent(ctx context.Context, formationID, chapterID string, blocks []models.ContentBlock) error {
	if m.err != nil {
		return m.err
	}
	if err := m.owned(formationID, chapterID); err != nil {
		return err
	}
	m.contentChapter = chapterID
	m.blocks = blocks
	return nil
}

func (m *mockFormationRepository) DeleteChapter(ctx context.Context, formationID, chapterID string) error {
	if m.err != nil {
		return m.err
	}
	if err := m.owned(formationID, chapterID); err != nil {
		return err
	}
	m.deletedChapter = chapterID
	return nil
}

// mockSessionRegistry is a mock implementation of SessionRegistry
type mockSessionRegistry struct {
	open map[string]bool
}

func (m *mockSessionRegistry) IsOpen(id string) bool {
	return m.open[id]
}

func setupTestFormationService(open ...string) (*FormationService, *mockFormationRepository) {
	repo := &mockFormationRepository{}
	registry := &mockSessionRegistry{open: map[string]bool{}}
	for _, id := range open {
		registry.open[id] = true
	}
	service := NewFormationService(repo, registry)
	service.newID = idSequence()
	return service, repo
}

func TestFormationService_RefusesWhileSessionOpen(t *testing.T) {
	service, repo := setupTestFormationService("f1")
	ctx := context.Background()

	_, err := service.CreateModule(ctx, "f1", &models.ModuleSeed{Title: "M"})
	assert.True(t, errors.Is(err, models.ErrSessionActive))

	_, err = service.CreateChapter(ctx, "f1", "m0", &models.ChapterSeed{Title: "C"})
	assert.True(t, errors.Is(err, models.ErrSessionActive))

	err = service.UpdateChapterContent(ctx, "f1", "c0", nil)
	assert.True(t, errors.Is(err, models.ErrSessionActive))

	err = service.DeleteChapter(ctx, "f1", "c0")
	assert.True(t, errors.Is(err, models.ErrSessionActive))

	assert.Nil(t, repo.module)
	assert.Nil(t, repo.chapter)
	assert.Empty(t, repo.deletedChapter)
}

func TestFormationService_NodesOfAnotherFormation(t *testing.T) {
	service, repo := setupTestFormationService("f1")
	repo.owners = map[string]string{"m0": "f1", "c0": "f1"}
	ctx := context.Background()

	_, err := service.CreateChapter(ctx, "f2", "m0", &models.ChapterSeed{Title: "C"})
	assert.True(t, errors.Is(err, models.ErrNotFound), "got %v", err)

	err = service.UpdateChapterContent(ctx, "f2", "c0", []models.ContentBlock{})
	assert.True(t, errors.Is(err, models.ErrNotFound), "got %v", err)

	err = service.DeleteChapter(ctx, "f2", "c0")
	assert.True(t, errors.Is(err, models.ErrNotFound), "got %v", err)

	assert.Empty(t, repo.chapterModuleID)
	assert.Empty(t, repo.contentChapter)
	assert.Empty(t, repo.deletedChapter)
}

func TestFormationService_CreateModule(t *testing.T) {
	tests := []struct {
		name          string
		seed          *models.ModuleSeed
		repoErr       error
		expectedError error
	}{
		{name: "success", seed: &models.ModuleSeed{Title: "Basics"}},
		{name: "missing title", seed: &models.ModuleSeed{}, expectedError: models.ErrInvalidRequest},
		{name: "formation not found", seed: &models.ModuleSeed{Title: "Basics"}, repoErr: models.ErrNotFound, expectedError: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupTestFormationService()
			repo.err = tt.repoErr

			module, err := service.CreateModule(context.Background(), "f1", tt.seed)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, module)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Basics", module.Title)
		})
	}
}

func TestFormationService_CreateChapter(t *testing.T) {
	service, repo := setupTestFormationService("other")

	chapter, err := service.CreateChapter(context.Background(), "f1", "m3", &models.ChapterSeed{Title: "Setup", Required: true})

	require.NoError(t, err)
	assert.True(t, chapter.Required)
	assert.Equal(t, "m3", repo.chapterModuleID)

	_, err = service.CreateChapter(context.Background(), "f1", "m3", &models.ChapterSeed{})
	assert.True(t, errors.Is(err, models.ErrInvalidRequest))
}

func TestFormationService_UpdateChapterContent(t *testing.T) {
	tests := []struct {
		name          string
		blocks        []models.ContentBlock
		expectedError error
		check         func(*testing.T, []models.ContentBlock)
	}{
		{
			name: "renumbers, assigns ids and fills defaults",
			blocks: []models.ContentBlock{
				{ID: "keep", Type: models.BlockTypeText, Order: 7, Data: &models.TextData{HTMLContent: "<p>x</p>"}},
				{Type: models.BlockTypeQuiz, Order: 3},
			},
			check: func(t *testing.T, saved []models.ContentBlock) {
				require.Len(t, saved, 2)
				assert.Equal(t, "keep", saved[0].ID)
				assert.Equal(t, 0, saved[0].Order)
				assert.Equal(t, "gen-1", saved[1].ID)
				assert.Equal(t, 1, saved[1].Order)
				assert.Equal(t, 100, saved[1].Data.(*models.QuizData).MaxPoints)
			},
		},
		{
			name:          "unknown type",
			blocks:        []models.ContentBlock{{Type: "poll"}},
			expectedError: models.ErrInvalidVariant,
		},
		{
			name:          "payload of another type",
			blocks:        []models.ContentBlock{{Type: models.BlockTypeVideo, Data: &models.AudioData{}}},
			expectedError: models.ErrInvalidPatch,
		},
		{
			name:   "empty content",
			blocks: []models.ContentBlock{},
			check: func(t *testing.T, saved []models.ContentBlock) {
				assert.Empty(t, saved)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupTestFormationService()

			err := service.UpdateChapterContent(context.Background(), "f1", "c0", tt.blocks)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
				assert.Empty(t, repo.contentChapter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "c0", repo.contentChapter)
			tt.check(t, repo.blocks)
		})
	}
}

func TestFormationService_DeleteChapter(t *testing.T) {
	service, repo := setupTestFormationService()

	require.NoError(t, service.DeleteChapter(context.Background(), "f1", "c9"))
	assert.Equal(t, "c9", repo.deletedChapter)

	repo.err = errors.New("db down")
	assert.Error(t, service.DeleteChapter(context.Background(), "f1", "c9"))
}
