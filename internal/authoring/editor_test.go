package authoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/mentorat/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns an id generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// setupTestEditor creates an editor over sampleFormation and records every change
func setupTestEditor(t *testing.T) (*Editor, *[]Change) {
	t.Helper()
	e := NewEditor(sampleFormation(), WithIDGenerator(sequentialIDs()))
	changes := &[]Change{}
	e.Subscribe(func(c Change) {
		*changes = append(*changes, c)
	})
	return e, changes
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestNewEditor_CopiesAndNormalizes(t *testing.T) {
	f := sampleFormation()
	f.Modules[1].Order = 7

	e := NewEditor(f)
	f.Modules[0].Title = "changed outside"

	snapshot, rev := e.Snapshot()
	assert.Zero(t, rev)
	assert.Equal(t, 1, snapshot.Modules[1].Order)
	assert.Empty(t, snapshot.Modules[0].Title)

	empty := NewEditor(nil)
	snapshot, _ = empty.Snapshot()
	assert.NotNil(t, snapshot.Modules)
}

func TestNewFormation(t *testing.T) {
	f := NewFormation("f9", &models.CreateFormationRequest{
		Title: "Rust",
		Level: models.LevelAdvanced,
		Price: 20,
	}, sequentialIDs())

	require.NoError(t, CheckInvariants(f))
	assert.Equal(t, models.StatusDraft, f.Status)
	require.Len(t, f.Modules, 1)
	assert.Equal(t, "id-1", f.Modules[0].ID)
	require.Len(t, f.Modules[0].Chapters, 1)
	assert.Equal(t, "id-2", f.Modules[0].Chapters[0].ID)
	assert.Empty(t, f.Modules[0].Chapters[0].Blocks)
}

func TestEditor_AddBlockQuizScenario(t *testing.T) {
	f := &models.Formation{
		ID: "f1",
		Modules: []models.Module{{
			ID:       "m",
			Chapters: []models.Chapter{{ID: "c", Blocks: []models.ContentBlock{}}},
		}},
	}
	e := NewEditor(f, WithIDGenerator(sequentialIDs()))

	block, err := e.AddBlock("m", "c", models.BlockTypeQuiz)

	require.NoError(t, err)
	assert.Equal(t, 0, block.Order)
	quiz := block.Data.(*models.QuizData)
	assert.Equal(t, []models.QuizQuestion{}, quiz.Questions)
	assert.NotZero(t, quiz.MaxPoints)

	snapshot, _ := e.Snapshot()
	assert.Len(t, snapshot.Modules[0].Chapters[0].Blocks, 1)
}

func TestEditor_AddAppendsAtSiblingCount(t *testing.T) {
	e, changes := setupTestEditor(t)

	module, err := e.AddModule()
	require.NoError(t, err)
	assert.Equal(t, 2, module.Order)
	assert.Equal(t, "Module 3", module.Title)

	chapter, err := e.AddChapter("m0")
	require.NoError(t, err)
	assert.Equal(t, 2, chapter.Order)

	block, err := e.AddBlock("m0", "c00", models.BlockTypeEmbed)
	require.NoError(t, err)
	assert.Equal(t, 2, block.Order)
	assert.Equal(t, DefaultEmbedHeight, block.Data.(*models.EmbedData).Height)

	require.Len(t, *changes, 3)
	assert.Equal(t, Change{Kind: ChangeAdded, Node: NodeModule, Path: ModulePath(2), NodeID: module.ID, Revision: 1}, (*changes)[0])
	assert.Equal(t, ChapterPath(0, 2), (*changes)[1].Path)
	assert.Equal(t, BlockPath(0, 0, 2), (*changes)[2].Path)
	assert.Equal(t, uint64(3), e.Revision())
}

func TestEditor_AddErrors(t *testing.T) {
	tests := []struct {
		name          string
		call          func(*Editor) error
		expectedError error
	}{
		{
			name:          "unknown variant",
			call:          func(e *Editor) error { _, err := e.AddBlock("m0", "c00", "slideshow"); return err },
			expectedError: models.ErrInvalidVariant,
		},
		{
			name:          "unknown variant in missing chapter",
			call:          func(e *Editor) error { _, err := e.AddBlock("m0", "nope", "slideshow"); return err },
			expectedError: models.ErrInvalidVariant,
		},
		{
			name:          "block in missing chapter",
			call:          func(e *Editor) error { _, err := e.AddBlock("m0", "nope", models.BlockTypeText); return err },
			expectedError: models.ErrNotFound,
		},
		{
			name:          "chapter in missing module",
			call:          func(e *Editor) error { _, err := e.AddChapter("nope"); return err },
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, changes := setupTestEditor(t)
			before, _ := e.Snapshot()

			err := tt.call(e)

			assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
			after, rev := e.Snapshot()
			assert.Equal(t, before, after)
			assert.Zero(t, rev)
			assert.Empty(t, *changes)
		})
	}
}

func TestEditor_DeleteModuleScenario(t *testing.T) {
	f := &models.Formation{ID: "f", Modules: []models.Module{
		{ID: "M0", Order: 0}, {ID: "M1", Order: 1}, {ID: "M2", Order: 2},
	}}
	e := NewEditor(f)

	require.NoError(t, e.Delete(ModulePath(1)))

	snapshot, _ := e.Snapshot()
	require.Len(t, snapshot.Modules, 2)
	assert.Equal(t, "M0", snapshot.Modules[0].ID)
	assert.Equal(t, 0, snapshot.Modules[0].Order)
	assert.Equal(t, "M2", snapshot.Modules[1].ID)
	assert.Equal(t, 1, snapshot.Modules[1].Order)
}

func TestEditor_Delete(t *testing.T) {
	tests := []struct {
		name          string
		path          Path
		expectedNode  NodeKind
		expectedID    string
		expectedError bool
	}{
		{name: "module", path: ModulePath(0), expectedNode: NodeModule, expectedID: "m0"},
		{name: "chapter", path: ChapterPath(0, 0), expectedNode: NodeChapter, expectedID: "c00"},
		{name: "block", path: BlockPath(0, 0, 0), expectedNode: NodeBlock, expectedID: "b000"},
		{name: "missing block", path: BlockPath(0, 1, 0), expectedError: true},
		{name: "missing module", path: ModulePath(4), expectedError: true},
		{name: "empty path", path: Path{}, expectedError: true},
		{name: "too deep", path: Path{0, 0, 0, 0}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, changes := setupTestEditor(t)

			err := e.Delete(tt.path)

			if tt.expectedError {
				assert.True(t, errors.Is(err, models.ErrNotFound))
				assert.Empty(t, *changes)
				return
			}
			require.NoError(t, err)
			require.Len(t, *changes, 1)
			assert.Equal(t, ChangeDeleted, (*changes)[0].Kind)
			assert.Equal(t, tt.expectedNode, (*changes)[0].Node)
			assert.Equal(t, tt.expectedID, (*changes)[0].NodeID)
			snapshot, _ := e.Snapshot()
			assert.NoError(t, CheckInvariants(snapshot))
		})
	}
}

func TestEditor_DeleteBlockKeepsRelativeOrder(t *testing.T) {
	f := &models.Formation{ID: "f", Modules: []models.Module{{
		ID:       "m",
		Chapters: []models.Chapter{{ID: "c", Blocks: blocks("A", "B", "C", "D", "E")}},
	}}}
	e := NewEditor(f)

	require.NoError(t, e.Delete(BlockPath(0, 0, 2)))

	snapshot, _ := e.Snapshot()
	remaining := snapshot.Modules[0].Chapters[0].Blocks
	assert.Equal(t, []string{"A", "B", "D", "E"}, blockIDs(remaining))
	assert.Equal(t, []int{0, 1, 2, 3}, blockOrders(remaining))
}

func TestEditor_MoveBlockScenario(t *testing.T) {
	f := &models.Formation{ID: "f", Modules: []models.Module{{
		ID:       "m",
		Chapters: []models.Chapter{{ID: "c", Blocks: blocks("A", "B", "C")}},
	}}}
	e := NewEditor(f)
	var changes []Change
	e.Subscribe(func(c Change) { changes = append(changes, c) })

	dest, err := e.Move(BlockPath(0, 0, 1), 0)

	require.NoError(t, err)
	assert.Equal(t, BlockPath(0, 0, 0), dest)
	snapshot, _ := e.Snapshot()
	assert.Equal(t, []string{"B", "A", "C"}, blockIDs(snapshot.Modules[0].Chapters[0].Blocks))
	assert.Equal(t, []int{0, 1, 2}, blockOrders(snapshot.Modules[0].Chapters[0].Blocks))
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Kind: ChangeMoved, Node: NodeBlock, Path: BlockPath(0, 0, 0), NodeID: "B", Revision: 1}, changes[0])
}

func TestEditor_MoveSameIndexIsNotAChange(t *testing.T) {
	e, changes := setupTestEditor(t)
	before, _ := e.Snapshot()

	dest, err := e.Move(ChapterPath(0, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, ChapterPath(0, 1), dest)

	dest, err = e.Move(ModulePath(1), 99)
	require.NoError(t, err)
	assert.Equal(t, ModulePath(1), dest)

	after, rev := e.Snapshot()
	assert.Equal(t, before, after)
	assert.Zero(t, rev)
	assert.Empty(t, *changes)
}

func TestEditor_MoveErrors(t *testing.T) {
	e, changes := setupTestEditor(t)

	_, err := e.Move(ModulePath(5), 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = e.Move(BlockPath(0, 1, 0), 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = e.Move(Path{}, 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	assert.Empty(t, *changes)
}

func TestEditor_MoveChapterToAnotherModule(t *testing.T) {
	e, changes := setupTestEditor(t)

	dest, err := e.MoveChapterTo(ChapterPath(0, 0), "m1")

	require.NoError(t, err)
	assert.Equal(t, ChapterPath(1, 1), dest)

	snapshot, _ := e.Snapshot()
	require.NoError(t, CheckInvariants(snapshot))
	assert.Equal(t, "c01", snapshot.Modules[0].Chapters[0].ID)
	assert.Equal(t, "c00", snapshot.Modules[1].Chapters[1].ID)
	assert.Len(t, snapshot.Modules[1].Chapters[1].Blocks, 2)

	// A move across parents is reported as two separate changes.
	require.Len(t, *changes, 2)
	assert.Equal(t, Change{Kind: ChangeDeleted, Node: NodeChapter, Path: ChapterPath(0, 0), NodeID: "c00", Revision: 1}, (*changes)[0])
	assert.Equal(t, Change{Kind: ChangeAdded, Node: NodeChapter, Path: ChapterPath(1, 1), NodeID: "c00", Revision: 2}, (*changes)[1])
}

func TestEditor_MoveChapterToObserverSeesIntermediateTree(t *testing.T) {
	e := NewEditor(sampleFormation())
	var seen []int
	e.Subscribe(func(c Change) {
		snapshot, _ := e.Snapshot()
		total := 0
		for _, m := range snapshot.Modules {
			total += len(m.Chapters)
		}
		seen = append(seen, total)
	})

	_, err := e.MoveChapterTo(ChapterPath(1, 0), "m0")

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, seen, "the chapter is missing from the tree between the two changes")
}

func TestEditor_MoveBlockToAnotherChapter(t *testing.T) {
	e, changes := setupTestEditor(t)

	dest, err := e.MoveBlockTo(BlockPath(0, 0, 0), "m0", "c01")

	require.NoError(t, err)
	assert.Equal(t, BlockPath(0, 1, 0), dest)
	snapshot, _ := e.Snapshot()
	require.NoError(t, CheckInvariants(snapshot))
	assert.Equal(t, []string{"b001"}, blockIDs(snapshot.Modules[0].Chapters[0].Blocks))
	assert.Equal(t, []string{"b000"}, blockIDs(snapshot.Modules[0].Chapters[1].Blocks))
	require.Len(t, *changes, 2)

	_, err = e.MoveBlockTo(BlockPath(0, 0, 0), "m1", "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Len(t, *changes, 2)
}

func TestEditor_UpdateBlock(t *testing.T) {
	tests := []struct {
		name          string
		path          Path
		patch         BlockPatch
		expectedError error
		check         func(*testing.T, models.ContentBlock)
	}{
		{
			name: "merges payload keys and scalar fields",
			path: BlockPath(0, 0, 1),
			patch: BlockPatch{
				Title:    strPtr("Watch this"),
				Required: boolPtr(true),
				Data: map[string]json.RawMessage{
					"url":   json.RawMessage(`"https://cdn/x.mp4"`),
					"bogus": json.RawMessage(`1`),
				},
			},
			check: func(t *testing.T, b models.ContentBlock) {
				assert.Equal(t, "Watch this", b.Title)
				assert.True(t, b.Required)
				video := b.Data.(*models.VideoData)
				assert.Equal(t, "https://cdn/x.mp4", video.URL)
				assert.Equal(t, 4, video.DurationMinutes)
			},
		},
		{
			name:          "empty patch",
			path:          BlockPath(0, 0, 0),
			expectedError: models.ErrInvalidPatch,
		},
		{
			name: "undecodable value leaves the block unchanged",
			path: BlockPath(0, 0, 0),
			patch: BlockPatch{
				Title: strPtr("new"),
				Data:  map[string]json.RawMessage{"htmlContent": json.RawMessage(`42`)},
			},
			expectedError: models.ErrInvalidPatch,
			check: func(t *testing.T, b models.ContentBlock) {
				assert.Empty(t, b.Title)
				assert.Equal(t, "Intro", b.Data.(*models.TextData).Title)
			},
		},
		{
			name:          "missing block",
			path:          BlockPath(1, 0, 3),
			patch:         BlockPatch{Title: strPtr("x")},
			expectedError: models.ErrNotFound,
		},
		{
			name:          "chapter path",
			path:          ChapterPath(0, 0),
			patch:         BlockPatch{Title: strPtr("x")},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, changes := setupTestEditor(t)

			err := e.UpdateBlock(tt.path, tt.patch)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
				assert.Empty(t, *changes)
			} else {
				require.NoError(t, err)
				require.Len(t, *changes, 1)
				assert.Equal(t, ChangeUpdated, (*changes)[0].Kind)
			}
			if tt.check != nil {
				block, err := e.Block(tt.path)
				require.NoError(t, err)
				tt.check(t, block)
			}
		})
	}
}

func TestEditor_UpdateBlockByID(t *testing.T) {
	e, _ := setupTestEditor(t)

	p, err := e.UpdateBlockByID("b100", BlockPatch{Data: map[string]json.RawMessage{"maxAttempts": json.RawMessage(`5`)}})

	require.NoError(t, err)
	assert.Equal(t, BlockPath(1, 0, 0), p)
	block, err := e.Block(p)
	require.NoError(t, err)
	assert.Equal(t, 5, block.Data.(*models.QuizData).MaxAttempts)

	_, err = e.UpdateBlockByID("missing", BlockPatch{Title: strPtr("x")})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestEditor_UpdateNodes(t *testing.T) {
	e, changes := setupTestEditor(t)

	title := "Advanced Go"
	require.NoError(t, e.UpdateFormation(&models.UpdateFormationRequest{Title: &title}))
	require.NoError(t, e.UpdateModule(ModulePath(1), &models.UpdateModuleRequest{Title: strPtr("Concurrency")}))
	require.NoError(t, e.UpdateChapter(ChapterPath(0, 1), &models.UpdateChapterRequest{Required: boolPtr(true)}))

	snapshot, rev := e.Snapshot()
	assert.Equal(t, "Advanced Go", snapshot.Title)
	assert.Equal(t, "Concurrency", snapshot.Modules[1].Title)
	assert.True(t, snapshot.Modules[0].Chapters[1].Required)
	assert.Equal(t, uint64(3), rev)
	require.Len(t, *changes, 3)
	assert.Equal(t, NodeFormation, (*changes)[0].Node)

	err := e.UpdateFormation(&models.UpdateFormationRequest{})
	assert.True(t, errors.Is(err, models.ErrInvalidPatch))
	err = e.UpdateModule(ModulePath(1), &models.UpdateModuleRequest{})
	assert.True(t, errors.Is(err, models.ErrInvalidPatch))
	err = e.UpdateChapter(ChapterPath(3, 0), &models.UpdateChapterRequest{Required: boolPtr(true)})
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Len(t, *changes, 3)
}

func TestEditor_AccessorsReturnCopies(t *testing.T) {
	e, _ := setupTestEditor(t)

	block, err := e.Block(BlockPath(0, 0, 0))
	require.NoError(t, err)
	block.Data.(*models.TextData).Title = "mutated"

	module, err := e.Module(ModulePath(0))
	require.NoError(t, err)
	module.Chapters[0].Title = "mutated"

	snapshot, _ := e.Snapshot()
	assert.Equal(t, "Intro", snapshot.Modules[0].Chapters[0].Blocks[0].Data.(*models.TextData).Title)
	assert.Empty(t, snapshot.Modules[0].Chapters[0].Title)

	_, err = e.Chapter(ModulePath(0))
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestEditor_SubscribeAndUnsubscribe(t *testing.T) {
	e := NewEditor(sampleFormation())
	var first, second int
	unsubscribe := e.Subscribe(func(Change) { first++ })
	e.Subscribe(func(Change) { second++ })

	_, err := e.AddModule()
	require.NoError(t, err)
	unsubscribe()
	_, err = e.AddModule()
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestEditor_ReplaceKeepsRevision(t *testing.T) {
	e, changes := setupTestEditor(t)
	_, err := e.AddModule()
	require.NoError(t, err)

	canonical := sampleFormation()
	canonical.Title = "from store"
	e.Replace(canonical)

	snapshot, rev := e.Snapshot()
	assert.Equal(t, "from store", snapshot.Title)
	assert.Equal(t, uint64(1), rev)
	assert.Len(t, *changes, 1)
}

func TestEditor_RandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEditor(sampleFormation(), WithIDGenerator(sequentialIDs()))

	for step := 0; step < 400; step++ {
		snapshot, _ := e.Snapshot()
		m := len(snapshot.Modules)

		switch rng.Intn(6) {
		case 0:
			_, _ = e.AddModule()
		case 1:
			if m > 0 {
				_, _ = e.AddChapter(snapshot.Modules[rng.Intn(m)].ID)
			}
		case 2:
			if m > 0 {
				module := snapshot.Modules[rng.Intn(m)]
				if len(module.Chapters) > 0 {
					chapter := module.Chapters[rng.Intn(len(module.Chapters))]
					_, _ = e.AddBlock(module.ID, chapter.ID, models.BlockTypes[rng.Intn(len(models.BlockTypes))])
				}
			}
		case 3:
			_ = e.Delete(randomPath(rng, snapshot))
		case 4:
			_, _ = e.Move(randomPath(rng, snapshot), rng.Intn(5)-1)
		case 5:
			if m > 0 {
				p := randomPath(rng, snapshot)
				if p.Depth() == 2 {
					_, _ = e.MoveChapterTo(p, snapshot.Modules[rng.Intn(m)].ID)
				}
			}
		}

		after, _ := e.Snapshot()
		require.NoError(t, CheckInvariants(after), "step %d", step)
	}
}

// randomPath picks an existing node, or an out-of-range index now and then
func randomPath(rng *rand.Rand, f *models.Formation) Path {
	if len(f.Modules) == 0 {
		return ModulePath(rng.Intn(2))
	}
	m := rng.Intn(len(f.Modules))
	chapters := f.Modules[m].Chapters
	if len(chapters) == 0 || rng.Intn(3) == 0 {
		return ModulePath(m + rng.Intn(2))
	}
	c := rng.Intn(len(chapters))
	blocks := chapters[c].Blocks
	if len(blocks) == 0 || rng.Intn(2) == 0 {
		return ChapterPath(m, c)
	}
	return BlockPath(m, c, rng.Intn(len(blocks)+1))
}
