package models

import "slices"

// BlockData is the variant-specific payload of a content block
type BlockData interface {
	// BlockType returns the variant tag the payload belongs to
	BlockType() BlockType
	// Clone returns a deep copy of the payload
	Clone() BlockData
}

// TextData is the payload of a text block
type TextData struct {
	Title       string `json:"title"`
	HTMLContent string `json:"htmlContent"`
}

// VideoData is the payload of a video block
type VideoData struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
}

// AudioData is the payload of an audio block
type AudioData struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
}

// ImageData is the payload of an image block
type ImageData struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	AltText     string `json:"altText"`
	Description string `json:"description"`
}

// QuizQuestion is a single question of a quiz block
type QuizQuestion struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Kind           string   `json:"type"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Points         int      `json:"points"`
}

// QuizData is the payload of a quiz block
type QuizData struct {
	Title       string         `json:"title"`
	Questions   []QuizQuestion `json:"questions"`
	MaxPoints   int            `json:"maxPoints"`
	MaxAttempts int            `json:"maxAttempts"`
}

// FileData is the payload of a downloadable file block
type FileData struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// ExerciseData is the payload of an exercise block
type ExerciseData struct {
	Instructions           string `json:"instructions"`
	RequiredForProgression bool   `json:"requiredForProgression"`
}

// EmbedData is the payload of an embedded HTML block
type EmbedData struct {
	HTMLSnippet string `json:"htmlSnippet"`
	Height      int    `json:"height"`
}

// BlockType returns the text variant tag
func (d *TextData) BlockType() BlockType { return BlockTypeText }

// BlockType returns the video variant tag
func (d *VideoData) BlockType() BlockType { return BlockTypeVideo }

// BlockType returns the audio variant tag
func (d *AudioData) BlockType() BlockType { return BlockTypeAudio }

// BlockType returns the image variant tag
func (d *ImageData) BlockType() BlockType { return BlockTypeImage }

// BlockType returns the quiz variant tag
func (d *QuizData) BlockType() BlockType { return BlockTypeQuiz }

// BlockType returns the file variant tag
func (d *FileData) BlockType() BlockType { return BlockTypeFile }

// BlockType returns the exercise variant tag
func (d *ExerciseData) BlockType() BlockType { return BlockTypeExercise }

// BlockType returns the embed variant tag
func (d *EmbedData) BlockType() BlockType { return BlockTypeEmbed }

// Clone returns a copy of the payload
func (d *TextData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *VideoData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *AudioData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *ImageData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *FileData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *ExerciseData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a copy of the payload
func (d *EmbedData) Clone() BlockData {
	c := *d
	return &c
}

// Clone returns a deep copy of the payload, including questions
func (d *QuizData) Clone() BlockData {
	c := *d
	if d.Questions != nil {
		c.Questions = make([]QuizQuestion, len(d.Questions))
		for i, q := range d.Questions {
			q.Options = slices.Clone(q.Options)
			q.CorrectAnswers = slices.Clone(q.CorrectAnswers)
			c.Questions[i] = q
		}
	}
	return &c
}
