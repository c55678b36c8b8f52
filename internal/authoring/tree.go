package authoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mentorat/authoring/internal/models"
)

// Path addresses a node by sibling indices: one index for a module, two for a chapter,
// three for a content block.
type Path []int

// ModulePath returns the path of module m
func ModulePath(m int) Path { return Path{m} }

// ChapterPath returns the path of chapter c in module m
func ChapterPath(m, c int) Path { return Path{m, c} }

// BlockPath returns the path of block b in chapter c of module m
func BlockPath(m, c, b int) Path { return Path{m, c, b} }

// Depth returns the tree level addressed by the path (1 module, 2 chapter, 3 block)
func (p Path) Depth() int { return len(p) }

// Parent returns the path of the parent node
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Index returns the sibling index of the addressed node
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "/" + strings.Join(parts, "/")
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrNotFound, fmt.Sprintf(format, args...))
}

// ModuleAt returns module m of the formation
func ModuleAt(f *models.Formation, m int) (*models.Module, error) {
	if f == nil || m < 0 || m >= len(f.Modules) {
		return nil, notFound("module %d", m)
	}
	return &f.Modules[m], nil
}

// ChapterAt returns chapter c of module m
func ChapterAt(f *models.Formation, m, c int) (*models.Chapter, error) {
	module, err := ModuleAt(f, m)
	if err != nil {
		return nil, err
	}
	if c < 0 || c >= len(module.Chapters) {
		return nil, notFound("chapter %d in module %d", c, m)
	}
	return &module.Chapters[c], nil
}

// BlockAt returns block b of chapter c in module m
func BlockAt(f *models.Formation, m, c, b int) (*models.ContentBlock, error) {
	chapter, err := ChapterAt(f, m, c)
	if err != nil {
		return nil, err
	}
	if b < 0 || b >= len(chapter.Blocks) {
		return nil, notFound("block %d in chapter %d of module %d", b, c, m)
	}
	return &chapter.Blocks[b], nil
}

// LocateModule returns the path of the module with the given id
func LocateModule(f *models.Formation, moduleID string) (Path, error) {
	if f != nil {
		for i := range f.Modules {
			if f.Modules[i].ID == moduleID {
				return ModulePath(i), nil
			}
		}
	}
	return nil, notFound("module %q", moduleID)
}

// LocateChapter returns the path of the chapter with the given id inside the given module
func LocateChapter(f *models.Formation, moduleID, chapterID string) (Path, error) {
	mp, err := LocateModule(f, moduleID)
	if err != nil {
		return nil, err
	}
	chapters := f.Modules[mp.Index()].Chapters
	for i := range chapters {
		if chapters[i].ID == chapterID {
			return ChapterPath(mp.Index(), i), nil
		}
	}
	return nil, notFound("chapter %q in module %q", chapterID, moduleID)
}

// LocateBlock returns the path of the block with the given id anywhere in the formation
func LocateBlock(f *models.Formation, blockID string) (Path, error) {
	if f != nil {
		for m := range f.Modules {
			for c := range f.Modules[m].Chapters {
				blocks := f.Modules[m].Chapters[c].Blocks
				for b := range blocks {
					if blocks[b].ID == blockID {
						return BlockPath(m, c, b), nil
					}
				}
			}
		}
	}
	return nil, notFound("block %q", blockID)
}

// CheckInvariants verifies the structural invariants of a formation tree:
// contiguous zero-based positions in every sibling list, unique node ids,
// and block payloads matching their variant tag.
func CheckInvariants(f *models.Formation) error {
	if f == nil {
		return fmt.Errorf("formation is nil")
	}
	seen := make(map[string]string)
	claim := func(id, where string) error {
		if id == "" {
			return fmt.Errorf("%s has no id", where)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("id %q appears at %s and %s", id, prev, where)
		}
		seen[id] = where
		return nil
	}

	for m := range f.Modules {
		module := &f.Modules[m]
		where := ModulePath(m).String()
		if module.Order != m {
			return fmt.Errorf("module at %s has position %d", where, module.Order)
		}
		if err := claim(module.ID, where); err != nil {
			return err
		}
		for c := range module.Chapters {
			chapter := &module.Chapters[c]
			where := ChapterPath(m, c).String()
			if chapter.Order != c {
				return fmt.Errorf("chapter at %s has position %d", where, chapter.Order)
			}
			if err := claim(chapter.ID, where); err != nil {
				return err
			}
			for b := range chapter.Blocks {
				block := &chapter.Blocks[b]
				where := BlockPath(m, c, b).String()
				if block.Order != b {
					return fmt.Errorf("block at %s has position %d", where, block.Order)
				}
				if err := claim(block.ID, where); err != nil {
					return err
				}
				if !IsValidBlockType(block.Type) {
					return fmt.Errorf("block at %s: %w: %q", where, models.ErrInvalidVariant, block.Type)
				}
				if block.Data == nil || block.Data.BlockType() != block.Type {
					return fmt.Errorf("block at %s has a payload that does not match type %q", where, block.Type)
				}
			}
		}
	}
	return nil
}

// Normalize renumbers every sibling list to match array order and fills missing payloads
// with their defaults. It is applied to trees coming from persistence.
func Normalize(f *models.Formation) {
	if f == nil {
		return
	}
	Renumber(f.Modules)
	for m := range f.Modules {
		Renumber(f.Modules[m].Chapters)
		for c := range f.Modules[m].Chapters {
			blocks := f.Modules[m].Chapters[c].Blocks
			Renumber(blocks)
			for b := range blocks {
				if blocks[b].Data == nil {
					if data, err := DefaultData(blocks[b].Type); err == nil {
						blocks[b].Data = data
					}
				}
			}
		}
	}
}
