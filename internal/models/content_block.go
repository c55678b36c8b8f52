package models

import (
	"encoding/json"
	"fmt"
)

// BlockType represents the variant tag of a content block
type BlockType string

const (
	BlockTypeText     BlockType = "text"
	BlockTypeVideo    BlockType = "video"
	BlockTypeImage    BlockType = "image"
	BlockTypeAudio    BlockType = "audio"
	BlockTypeQuiz     BlockType = "quiz"
	BlockTypeFile     BlockType = "file"
	BlockTypeExercise BlockType = "exercise"
	BlockTypeEmbed    BlockType = "embed"
)

// BlockTypes lists every supported variant in display order
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeVideo,
	BlockTypeImage,
	BlockTypeAudio,
	BlockTypeQuiz,
	BlockTypeFile,
	BlockTypeExercise,
	BlockTypeEmbed,
}

// ContentBlock represents one unit of authored content inside a chapter
//
// Data always holds the payload struct matching Type.
type ContentBlock struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	Order    int       `json:"ordre"`
	Title    string    `json:"title,omitempty"`
	Required bool      `json:"required"`
	Data     BlockData `json:"data"`
}

// Position returns the block index among its siblings
func (b *ContentBlock) Position() int { return b.Order }

// SetPosition sets the block index among its siblings
func (b *ContentBlock) SetPosition(i int) { b.Order = i }

// Clone returns a deep copy of the block
func (b ContentBlock) Clone() ContentBlock {
	out := b
	if b.Data != nil {
		out.Data = b.Data.Clone()
	}
	return out
}

type contentBlockJSON struct {
	ID       string          `json:"id"`
	Type     BlockType       `json:"type"`
	Order    int             `json:"ordre"`
	Title    string          `json:"title,omitempty"`
	Required bool            `json:"required"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the payload according to the block type
func (b *ContentBlock) UnmarshalJSON(raw []byte) error {
	var aux contentBlockJSON
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}

	data, err := DecodeBlockData(aux.Type, aux.Data)
	if err != nil {
		return err
	}

	*b = ContentBlock{
		ID:       aux.ID,
		Type:     aux.Type,
		Order:    aux.Order,
		Title:    aux.Title,
		Required: aux.Required,
		Data:     data,
	}
	return nil
}

// UnknownBlockTypeError is returned when a payload is decoded for a type outside the registry
type UnknownBlockTypeError struct {
	Type BlockType
}

func (e *UnknownBlockTypeError) Error() string {
	return fmt.Sprintf("unknown block type %q", e.Type)
}

// Unwrap lets errors.Is match ErrInvalidVariant
func (e *UnknownBlockTypeError) Unwrap() error {
	return ErrInvalidVariant
}

// NewBlockData returns an empty payload for the given type
func NewBlockData(t BlockType) (BlockData, error) {
	switch t {
	case BlockTypeText:
		return &TextData{}, nil
	case BlockTypeVideo:
		return &VideoData{}, nil
	case BlockTypeImage:
		return &ImageData{}, nil
	case BlockTypeAudio:
		return &AudioData{}, nil
	case BlockTypeQuiz:
		return &QuizData{Questions: []QuizQuestion{}}, nil
	case BlockTypeFile:
		return &FileData{}, nil
	case BlockTypeExercise:
		return &ExerciseData{}, nil
	case BlockTypeEmbed:
		return &EmbedData{}, nil
	}
	return nil, &UnknownBlockTypeError{Type: t}
}

// DecodeBlockData decodes a raw JSON payload into the struct for the given type
//
// Keys outside the variant's shape are ignored. An empty or null payload yields an empty struct.
func DecodeBlockData(t BlockType, raw json.RawMessage) (BlockData, error) {
	data, err := NewBlockData(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return data, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to decode %s block data: %w", t, err)
	}
	return data, nil
}
