// Package authoring implements the in-memory formation tree: the block registry, path
// accessors, mutations and reordering. Nothing in this package performs I/O.
package authoring

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mentorat/authoring/internal/models"
)

const (
	// DefaultQuizMaxPoints is the score ceiling of a freshly created quiz
	DefaultQuizMaxPoints = 100
	// DefaultQuizMaxAttempts is the number of attempts allowed on a freshly created quiz
	DefaultQuizMaxAttempts = 3
	// DefaultEmbedHeight is the frame height in pixels of a freshly created embed
	DefaultEmbedHeight = 400
)

// blockShapes lists the payload keys of each variant.
// They match the json tags of the payload structs in models.
var blockShapes = map[models.BlockType][]string{
	models.BlockTypeText:     {"title", "htmlContent"},
	models.BlockTypeVideo:    {"title", "url", "durationMinutes", "description"},
	models.BlockTypeAudio:    {"title", "url", "durationMinutes", "description"},
	models.BlockTypeImage:    {"title", "url", "altText", "description"},
	models.BlockTypeQuiz:     {"title", "questions", "maxPoints", "maxAttempts"},
	models.BlockTypeFile:     {"title", "filename", "url", "size"},
	models.BlockTypeExercise: {"instructions", "requiredForProgression"},
	models.BlockTypeEmbed:    {"htmlSnippet", "height"},
}

// IsValidBlockType reports whether t belongs to the registry
func IsValidBlockType(t models.BlockType) bool {
	_, ok := blockShapes[t]
	return ok
}

// Shape returns the payload keys declared for a variant
func Shape(t models.BlockType) ([]string, error) {
	shape, ok := blockShapes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidVariant, t)
	}
	return slices.Clone(shape), nil
}

// DefaultData returns the payload a new block of type t starts with
func DefaultData(t models.BlockType) (models.BlockData, error) {
	switch t {
	case models.BlockTypeText:
		return &models.TextData{}, nil
	case models.BlockTypeVideo:
		return &models.VideoData{}, nil
	case models.BlockTypeAudio:
		return &models.AudioData{}, nil
	case models.BlockTypeImage:
		return &models.ImageData{}, nil
	case models.BlockTypeQuiz:
		return &models.QuizData{
			Questions:   []models.QuizQuestion{},
			MaxPoints:   DefaultQuizMaxPoints,
			MaxAttempts: DefaultQuizMaxAttempts,
		}, nil
	case models.BlockTypeFile:
		return &models.FileData{}, nil
	case models.BlockTypeExercise:
		return &models.ExerciseData{}, nil
	case models.BlockTypeEmbed:
		return &models.EmbedData{Height: DefaultEmbedHeight}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrInvalidVariant, t)
}

// MergeData shallow-merges patch into data and returns the merged payload
//
// Only keys in the variant's shape are applied; any other key is dropped. The input payload
// is never modified, so a decoding failure leaves the caller's block untouched.
func MergeData(data models.BlockData, patch map[string]json.RawMessage) (models.BlockData, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: block has no payload", models.ErrInvalidVariant)
	}
	t := data.BlockType()
	shape, ok := blockShapes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidVariant, t)
	}
	if len(patch) == 0 {
		return data.Clone(), nil
	}

	current, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s block data: %w", t, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s block data: %w", t, err)
	}

	for key, value := range patch {
		if !slices.Contains(shape, key) {
			continue
		}
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged %s block data: %w", t, err)
	}
	out, err := models.NewBlockData(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPatch, err)
	}
	return out, nil
}
