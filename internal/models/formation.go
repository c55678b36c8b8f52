package models

// Level represents the difficulty level of a formation
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Status represents the publication status of a formation
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Formation represents an authored course with its ordered modules
type Formation struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DurationMinutes int      `json:"estimatedDuration"`
	Level           Level    `json:"level"`
	Status          Status   `json:"status"`
	Modules         []Module `json:"modules"`
}

// Module represents a top-level subdivision of a formation
type Module struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Order           int       `json:"ordre"`
	DurationMinutes int       `json:"estimatedDuration"`
	Chapters        []Chapter `json:"chapitres"`
}

// Chapter represents a subdivision of a module holding the actual content
type Chapter struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Order           int            `json:"ordre"`
	DurationMinutes int            `json:"estimatedDuration"`
	Required        bool           `json:"required"`
	Blocks          []ContentBlock `json:"contenu"`
}

// Position returns the module index among its siblings
func (m *Module) Position() int { return m.Order }

// SetPosition sets the module index among its siblings
func (m *Module) SetPosition(i int) { m.Order = i }

// Position returns the chapter index among its siblings
func (c *Chapter) Position() int { return c.Order }

// SetPosition sets the chapter index among its siblings
func (c *Chapter) SetPosition(i int) { c.Order = i }

// Clone returns a deep copy of the formation
func (f *Formation) Clone() *Formation {
	if f == nil {
		return nil
	}
	out := *f
	out.Modules = make([]Module, len(f.Modules))
	for i := range f.Modules {
		out.Modules[i] = f.Modules[i].Clone()
	}
	return &out
}

// Clone returns a deep copy of the module
func (m Module) Clone() Module {
	out := m
	out.Chapters = make([]Chapter, len(m.Chapters))
	for i := range m.Chapters {
		out.Chapters[i] = m.Chapters[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the chapter
func (c Chapter) Clone() Chapter {
	out := c
	out.Blocks = make([]ContentBlock, len(c.Blocks))
	for i := range c.Blocks {
		out.Blocks[i] = c.Blocks[i].Clone()
	}
	return out
}

// CreateFormationRequest represents a request to create a formation
type CreateFormationRequest struct {
	Title           string  `json:"title" validate:"required,max=255" example:"Go for beginners"`
	Description     string  `json:"description" validate:"max=5000"`
	Price           float64 `json:"price" validate:"gte=0" example:"49.9"`
	DurationMinutes int     `json:"estimatedDuration" validate:"gte=0" example:"120"`
	Level           Level   `json:"level" validate:"required,oneof=beginner intermediate advanced" example:"beginner"`
}

// UpdateFormationRequest represents a request to update a formation (partial update)
type UpdateFormationRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"estimatedDuration,omitempty" validate:"omitempty,gte=0"`
	Level           *Level   `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// UpdateModuleRequest represents a request to update a module (partial update)
type UpdateModuleRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	DurationMinutes *int    `json:"estimatedDuration,omitempty" validate:"omitempty,gte=0"`
}

// UpdateChapterRequest represents a request to update a chapter (partial update)
type UpdateChapterRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	DurationMinutes *int    `json:"estimatedDuration,omitempty" validate:"omitempty,gte=0"`
	Required        *bool   `json:"required,omitempty"`
}

// ModuleSeed holds the fields used to create a module directly through the repository
type ModuleSeed struct {
	Title           string `json:"title" validate:"required,max=255"`
	Description     string `json:"description" validate:"max=5000"`
	DurationMinutes int    `json:"estimatedDuration" validate:"gte=0"`
}

// ChapterSeed holds the fields used to create a chapter directly through the repository
type ChapterSeed struct {
	Title           string `json:"title" validate:"required,max=255"`
	Description     string `json:"description" validate:"max=5000"`
	DurationMinutes int    `json:"estimatedDuration" validate:"gte=0"`
	Required        bool   `json:"required"`
}

// MoveRequest represents a request to move a node within its sibling list or to another parent
type MoveRequest struct {
	Target          int    `json:"target" example:"0"`
	TargetModuleID  string `json:"targetModuleId,omitempty" validate:"omitempty,uuid"`
	TargetChapterID string `json:"targetChapterId,omitempty" validate:"omitempty,uuid"`
}

// DurationEstimate holds suggested durations computed from chapter content
type DurationEstimate struct {
	FormationMinutes int                     `json:"formationMinutes"`
	Modules          []ModuleDurationEstimate `json:"modules"`
}

// ModuleDurationEstimate holds the suggested duration of one module and its chapters
type ModuleDurationEstimate struct {
	ModuleID string         `json:"moduleId"`
	Minutes  int            `json:"minutes"`
	Chapters map[string]int `json:"chapters"`
}
