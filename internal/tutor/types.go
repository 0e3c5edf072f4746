package tutor

import (
	"errors"
	"fmt"
)

// Question is one multiple-choice item. Options maps an option key
// ("A".."D") to its text; Answer holds the correct key.
type Question struct {
	Question   string            `json:"question"`
	Options    map[string]string `json:"options"`
	Answer     string            `json:"answer"`
	Concept    string            `json:"concept"`
	Difficulty string            `json:"difficulty,omitempty"`
}

// ConceptAnalysis explains one misunderstood concept. VideoURL is filled
// in by the caller after generation.
type ConceptAnalysis struct {
	ConceptName       string     `json:"concept_name"`
	Explanation       string     `json:"explanation"`
	PracticeQuestions []Question `json:"practice_questions"`
	VideoURL          string     `json:"video_url,omitempty"`
}

// Generation operations, used as GenerationError.Op.
const (
	OpNotes      = "notes"
	OpQuestions  = "questions"
	OpAnalysis   = "analysis"
	OpAssessment = "assessment"
)

var (
	// ErrNoPayload means the model reply held no parseable JSON.
	ErrNoPayload = errors.New("no parseable JSON in response")
	// ErrEmptyResult means the reply parsed to an empty list.
	ErrEmptyResult = errors.New("empty result")
	// ErrSchema means the parsed JSON did not have the expected shape.
	ErrSchema = errors.New("response does not match schema")
)

// GenerationError reports a failed generation. Its message starts with
// "Error:" so notes failures read the same whether the provider failed or
// the provider itself answered with an error text.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Error: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
