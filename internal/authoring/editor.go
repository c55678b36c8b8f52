package authoring

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mentorat/authoring/internal/models"
)

// NodeKind identifies the tree level a change applies to
type NodeKind string

const (
	NodeFormation NodeKind = "formation"
	NodeModule    NodeKind = "module"
	NodeChapter   NodeKind = "chapter"
	NodeBlock     NodeKind = "block"
)

// ChangeKind identifies the kind of mutation applied to the tree
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	ChangeMoved   ChangeKind = "moved"
)

// Change describes one successful mutation
type Change struct {
	Kind     ChangeKind
	Node     NodeKind
	Path     Path
	NodeID   string
	Revision uint64
}

// Observer is notified synchronously after every successful mutation
type Observer func(Change)

// BlockPatch holds the fields to merge into a content block
//
// Nil fields are left unchanged. Data keys are merged into the payload one by one.
type BlockPatch struct {
	Title    *string
	Required *bool
	Data     map[string]json.RawMessage
}

// Editor owns a formation tree and applies mutations to it
//
// Every mutation either succeeds completely or returns an error and leaves the tree as it
// was. Positions are renumbered before a mutation returns. Editor is not safe for
// concurrent use; callers serialize access.
type Editor struct {
	formation    *models.Formation
	revision     uint64
	observers    []observerEntry
	nextObserver int
	newID        func() string
}

type observerEntry struct {
	id int
	fn Observer
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithIDGenerator sets the function used to assign ids to new nodes
func WithIDGenerator(fn func() string) EditorOption {
	return func(e *Editor) {
		e.newID = fn
	}
}

// NewEditor creates an editor working on a copy of f
//
// The copy is normalized so that positions match array order.
func NewEditor(f *models.Formation, opts ...EditorOption) *Editor {
	e := &Editor{
		formation: f.Clone(),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.formation == nil {
		e.formation = &models.Formation{}
	}
	if e.formation.Modules == nil {
		e.formation.Modules = []models.Module{}
	}
	Normalize(e.formation)
	return e
}

// NewFormation builds a draft formation holding one default module with one empty chapter
func NewFormation(id string, req *models.CreateFormationRequest, newID func() string) *models.Formation {
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	f := &models.Formation{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Level:           req.Level,
		Status:          models.StatusDraft,
		Modules: []models.Module{
			{
				ID:    newID(),
				Title: "Module 1",
				Chapters: []models.Chapter{
					{
						ID:     newID(),
						Title:  "Chapter 1",
						Blocks: []models.ContentBlock{},
					},
				},
			},
		},
	}
	return f
}

// Subscribe registers an observer and returns a function that removes it
func (e *Editor) Subscribe(fn Observer) func() {
	id := e.nextObserver
	e.nextObserver++
	e.observers = append(e.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// Revision returns the number of successful mutations applied so far
func (e *Editor) Revision() uint64 {
	return e.revision
}

// Snapshot returns a deep copy of the tree together with the revision it reflects
func (e *Editor) Snapshot() (*models.Formation, uint64) {
	return e.formation.Clone(), e.revision
}

// Replace swaps the whole tree for f without notifying observers
//
// It is used to adopt the canonical form returned by the store; the revision is kept.
func (e *Editor) Replace(f *models.Formation) {
	next := f.Clone()
	Normalize(next)
	e.formation = next
}

func (e *Editor) commit(kind ChangeKind, node NodeKind, path Path, id string) {
	e.revision++
	change := Change{
		Kind:     kind,
		Node:     node,
		Path:     append(Path(nil), path...),
		NodeID:   id,
		Revision: e.revision,
	}
	for _, o := range e.observers {
		o.fn(change)
	}
}

// LocateModule returns the path of a module by id
func (e *Editor) LocateModule(moduleID string) (Path, error) {
	return LocateModule(e.formation, moduleID)
}

// LocateChapter returns the path of a chapter by module and chapter id
func (e *Editor) LocateChapter(moduleID, chapterID string) (Path, error) {
	return LocateChapter(e.formation, moduleID, chapterID)
}

// LocateBlock returns the path of a block by id
func (e *Editor) LocateBlock(blockID string) (Path, error) {
	return LocateBlock(e.formation, blockID)
}

func (e *Editor) moduleAt(p Path) (*models.Module, error) {
	if p.Depth() != 1 {
		return nil, notFound("path %s does not address a module", p)
	}
	return ModuleAt(e.formation, p[0])
}

func (e *Editor) chapterAt(p Path) (*models.Chapter, error) {
	if p.Depth() != 2 {
		return nil, notFound("path %s does not address a chapter", p)
	}
	return ChapterAt(e.formation, p[0], p[1])
}

func (e *Editor) blockAt(p Path) (*models.ContentBlock, error) {
	if p.Depth() != 3 {
		return nil, notFound("path %s does not address a block", p)
	}
	return BlockAt(e.formation, p[0], p[1], p[2])
}

// Module returns a copy of the module at p
func (e *Editor) Module(p Path) (models.Module, error) {
	module, err := e.moduleAt(p)
	if err != nil {
		return models.Module{}, err
	}
	return module.Clone(), nil
}

// Chapter returns a copy of the chapter at p
func (e *Editor) Chapter(p Path) (models.Chapter, error) {
	chapter, err := e.chapterAt(p)
	if err != nil {
		return models.Chapter{}, err
	}
	return chapter.Clone(), nil
}

// Block returns a copy of the block at p
func (e *Editor) Block(p Path) (models.ContentBlock, error) {
	block, err := e.blockAt(p)
	if err != nil {
		return models.ContentBlock{}, err
	}
	return block.Clone(), nil
}

// UpdateFormation merges the given fields into the formation header
func (e *Editor) UpdateFormation(req *models.UpdateFormationRequest) error {
	if req.Title == nil && req.Description == nil && req.Price == nil && req.DurationMinutes == nil && req.Level == nil {
		return fmt.Errorf("%w: at least one field must be provided", models.ErrInvalidPatch)
	}
	f := e.formation
	if req.Title != nil {
		f.Title = *req.Title
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		f.DurationMinutes = *req.DurationMinutes
	}
	if req.Level != nil {
		f.Level = *req.Level
	}
	e.commit(ChangeUpdated, NodeFormation, nil, f.ID)
	return nil
}

// AddModule appends a new module at the end of the formation
func (e *Editor) AddModule() (models.Module, error) {
	n := len(e.formation.Modules)
	module := models.Module{
		ID:       e.newID(),
		Title:    fmt.Sprintf("Module %d", n+1),
		Chapters: []models.Chapter{},
	}
	e.formation.Modules = Append(e.formation.Modules, module)
	e.commit(ChangeAdded, NodeModule, ModulePath(n), module.ID)
	return e.formation.Modules[n].Clone(), nil
}

// AddChapter appends a new chapter at the end of the given module
func (e *Editor) AddChapter(moduleID string) (models.Chapter, error) {
	mp, err := LocateModule(e.formation, moduleID)
	if err != nil {
		return models.Chapter{}, err
	}
	module := &e.formation.Modules[mp.Index()]
	n := len(module.Chapters)
	chapter := models.Chapter{
		ID:     e.newID(),
		Title:  fmt.Sprintf("Chapter %d", n+1),
		Blocks: []models.ContentBlock{},
	}
	module.Chapters = Append(module.Chapters, chapter)
	e.commit(ChangeAdded, NodeChapter, ChapterPath(mp.Index(), n), chapter.ID)
	return module.Chapters[n].Clone(), nil
}

// AddBlock appends a new block of type t, with its default payload, to the given chapter
func (e *Editor) AddBlock(moduleID, chapterID string, t models.BlockType) (models.ContentBlock, error) {
	data, err := DefaultData(t)
	if err != nil {
		return models.ContentBlock{}, err
	}
	cp, err := LocateChapter(e.formation, moduleID, chapterID)
	if err != nil {
		return models.ContentBlock{}, err
	}
	chapter := &e.formation.Modules[cp[0]].Chapters[cp[1]]
	n := len(chapter.Blocks)
	block := models.ContentBlock{
		ID:   e.newID(),
		Type: t,
		Data: data,
	}
	chapter.Blocks = Append(chapter.Blocks, block)
	e.commit(ChangeAdded, NodeBlock, BlockPath(cp[0], cp[1], n), block.ID)
	return chapter.Blocks[n].Clone(), nil
}

// UpdateModule merges the given fields into the module at p
func (e *Editor) UpdateModule(p Path, req *models.UpdateModuleRequest) error {
	module, err := e.moduleAt(p)
	if err != nil {
		return err
	}
	if req.Title == nil && req.Description == nil && req.DurationMinutes == nil {
		return fmt.Errorf("%w: at least one field must be provided", models.ErrInvalidPatch)
	}
	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		module.DurationMinutes = *req.DurationMinutes
	}
	e.commit(ChangeUpdated, NodeModule, p, module.ID)
	return nil
}

// UpdateChapter merges the given fields into the chapter at p
func (e *Editor) UpdateChapter(p Path, req *models.UpdateChapterRequest) error {
	chapter, err := e.chapterAt(p)
	if err != nil {
		return err
	}
	if req.Title == nil && req.Description == nil && req.DurationMinutes == nil && req.Required == nil {
		return fmt.Errorf("%w: at least one field must be provided", models.ErrInvalidPatch)
	}
	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		chapter.DurationMinutes = *req.DurationMinutes
	}
	if req.Required != nil {
		chapter.Required = *req.Required
	}
	e.commit(ChangeUpdated, NodeChapter, p, chapter.ID)
	return nil
}

// UpdateBlock merges patch into the block at p
//
// Payload keys outside the block's shape are ignored. When the payload cannot be merged the
// block is left unchanged.
func (e *Editor) UpdateBlock(p Path, patch BlockPatch) error {
	block, err := e.blockAt(p)
	if err != nil {
		return err
	}
	if patch.Title == nil && patch.Required == nil && len(patch.Data) == 0 {
		return fmt.Errorf("%w: at least one field must be provided", models.ErrInvalidPatch)
	}

	data := block.Data
	if len(patch.Data) > 0 {
		merged, err := MergeData(block.Data, patch.Data)
		if err != nil {
			return err
		}
		data = merged
	}

	if patch.Title != nil {
		block.Title = *patch.Title
	}
	if patch.Required != nil {
		block.Required = *patch.Required
	}
	block.Data = data
	e.commit(ChangeUpdated, NodeBlock, p, block.ID)
	return nil
}

// UpdateBlockByID merges patch into the block with the given id wherever it currently is
func (e *Editor) UpdateBlockByID(blockID string, patch BlockPatch) (Path, error) {
	p, err := LocateBlock(e.formation, blockID)
	if err != nil {
		return nil, err
	}
	if err := e.UpdateBlock(p, patch); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the node at p and renumbers its remaining siblings
func (e *Editor) Delete(p Path) error {
	switch p.Depth() {
	case 1:
		modules, removed, err := Remove(e.formation.Modules, p[0])
		if err != nil {
			return err
		}
		e.formation.Modules = modules
		e.commit(ChangeDeleted, NodeModule, p, removed.ID)
		return nil
	case 2:
		module, err := ModuleAt(e.formation, p[0])
		if err != nil {
			return err
		}
		chapters, removed, err := Remove(module.Chapters, p[1])
		if err != nil {
			return err
		}
		module.Chapters = chapters
		e.commit(ChangeDeleted, NodeChapter, p, removed.ID)
		return nil
	case 3:
		chapter, err := ChapterAt(e.formation, p[0], p[1])
		if err != nil {
			return err
		}
		blocks, removed, err := Remove(chapter.Blocks, p[2])
		if err != nil {
			return err
		}
		chapter.Blocks = blocks
		e.commit(ChangeDeleted, NodeBlock, p, removed.ID)
		return nil
	}
	return notFound("path %s", p)
}

// Move reorders the node at p among its siblings so that it ends at index target
//
// Moving a node onto its own index only renumbers the list and does not count as a change.
// The returned path is where the node ended up.
func (e *Editor) Move(p Path, target int) (Path, error) {
	switch p.Depth() {
	case 1:
		modules, err := Move(e.formation.Modules, p[0], target)
		if err != nil {
			return nil, err
		}
		idx := clampTarget(target, len(modules))
		return e.commitMove(NodeModule, p, idx, func() { e.formation.Modules = modules }, modules[idx].ID), nil
	case 2:
		module, err := ModuleAt(e.formation, p[0])
		if err != nil {
			return nil, err
		}
		chapters, err := Move(module.Chapters, p[1], target)
		if err != nil {
			return nil, err
		}
		idx := clampTarget(target, len(chapters))
		return e.commitMove(NodeChapter, p, idx, func() { module.Chapters = chapters }, chapters[idx].ID), nil
	case 3:
		chapter, err := ChapterAt(e.formation, p[0], p[1])
		if err != nil {
			return nil, err
		}
		blocks, err := Move(chapter.Blocks, p[2], target)
		if err != nil {
			return nil, err
		}
		idx := clampTarget(target, len(blocks))
		return e.commitMove(NodeBlock, p, idx, func() { chapter.Blocks = blocks }, blocks[idx].ID), nil
	}
	return nil, notFound("path %s", p)
}

func (e *Editor) commitMove(node NodeKind, from Path, to int, apply func(), id string) Path {
	apply()
	dest := append(append(Path(nil), from.Parent()...), to)
	if from.Index() != to {
		e.commit(ChangeMoved, node, dest, id)
	}
	return dest
}

func clampTarget(target, n int) int {
	return max(0, min(target, n-1))
}

// MoveChapterTo moves the chapter at p to the end of another module
//
// The move is a delete from the source module followed by an append to the target module,
// each renumbering its own list and each reported to observers as a separate change.
func (e *Editor) MoveChapterTo(p Path, targetModuleID string) (Path, error) {
	if _, err := e.chapterAt(p); err != nil {
		return nil, err
	}
	tp, err := LocateModule(e.formation, targetModuleID)
	if err != nil {
		return nil, err
	}

	source := &e.formation.Modules[p[0]]
	chapters, removed, err := Remove(source.Chapters, p[1])
	if err != nil {
		return nil, err
	}
	source.Chapters = chapters
	e.commit(ChangeDeleted, NodeChapter, p, removed.ID)

	target := &e.formation.Modules[tp.Index()]
	n := len(target.Chapters)
	target.Chapters = Append(target.Chapters, removed)
	dest := ChapterPath(tp.Index(), n)
	e.commit(ChangeAdded, NodeChapter, dest, removed.ID)
	return dest, nil
}

// MoveBlockTo moves the block at p to the end of another chapter
//
// Like MoveChapterTo, this is a delete followed by an append.
func (e *Editor) MoveBlockTo(p Path, targetModuleID, targetChapterID string) (Path, error) {
	if _, err := e.blockAt(p); err != nil {
		return nil, err
	}
	tp, err := LocateChapter(e.formation, targetModuleID, targetChapterID)
	if err != nil {
		return nil, err
	}

	source := &e.formation.Modules[p[0]].Chapters[p[1]]
	blocks, removed, err := Remove(source.Blocks, p[2])
	if err != nil {
		return nil, err
	}
	source.Blocks = blocks
	e.commit(ChangeDeleted, NodeBlock, p, removed.ID)

	target := &e.formation.Modules[tp[0]].Chapters[tp[1]]
	n := len(target.Blocks)
	target.Blocks = Append(target.Blocks, removed)
	dest := BlockPath(tp[0], tp[1], n)
	e.commit(ChangeAdded, NodeBlock, dest, removed.ID)
	return dest, nil
}
