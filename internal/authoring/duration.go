package authoring

import (
	"strings"

	"github.com/mentorat/authoring/internal/models"
	"golang.org/x/net/html"
)

const (
	// ReadingWordsPerMinute is the reading speed used to estimate text blocks
	ReadingWordsPerMinute = 200
	// MinutesPerQuizQuestion is the time budget of one quiz question
	MinutesPerQuizQuestion = 1
)

// EstimateDurations computes the expected time to go through every chapter, module and the
// whole formation, in minutes.
//
// Video and audio blocks count their declared duration, text blocks their reading time and
// quizzes a fixed time per question. The other variants count for nothing.
func EstimateDurations(f *models.Formation) models.DurationEstimate {
	var estimate models.DurationEstimate
	if f == nil {
		return estimate
	}
	estimate.Modules = make([]models.ModuleDurationEstimate, 0, len(f.Modules))
	for _, module := range f.Modules {
		me := models.ModuleDurationEstimate{
			ModuleID: module.ID,
			Chapters: make(map[string]int, len(module.Chapters)),
		}
		for _, chapter := range module.Chapters {
			minutes := 0
			for _, block := range chapter.Blocks {
				minutes += BlockMinutes(block.Data)
			}
			me.Chapters[chapter.ID] = minutes
			me.Minutes += minutes
		}
		estimate.Modules = append(estimate.Modules, me)
		estimate.FormationMinutes += me.Minutes
	}
	return estimate
}

// BlockMinutes estimates the time spent on a single block payload
func BlockMinutes(data models.BlockData) int {
	switch d := data.(type) {
	case *models.VideoData:
		return max(d.DurationMinutes, 0)
	case *models.AudioData:
		return max(d.DurationMinutes, 0)
	case *models.TextData:
		words := CountWords(d.HTMLContent)
		if words == 0 {
			return 0
		}
		return (words + ReadingWordsPerMinute - 1) / ReadingWordsPerMinute
	case *models.QuizData:
		return len(d.Questions) * MinutesPerQuizQuestion
	}
	return 0
}

// CountWords counts the words of the visible text in an HTML fragment
//
// Content of script and style elements is skipped.
func CountWords(fragment string) int {
	z := html.NewTokenizer(strings.NewReader(fragment))
	words := 0
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.StartTagToken:
			name, _ := z.TagName()
			if isHiddenElement(string(name)) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isHiddenElement(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words += len(strings.Fields(string(z.Text())))
			}
		}
	}
}

func isHiddenElement(name string) bool {
	return name == "script" || name == "style"
}
