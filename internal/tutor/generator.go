// Package tutor turns curriculum topics into study material: markdown
// notes, quizzes, analyses of wrong answers and follow-up assessments.
// Each operation makes exactly one completion call.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/pai-learn/internal/ai"
)

// Completer is the subset of ai.Router the generator needs.
type Completer interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (ai.CompletionResponse, error)
}

// Generator produces study material through a Completer.
type Generator struct {
	ai Completer
}

// New creates a Generator.
func New(c Completer) *Generator {
	return &Generator{ai: c}
}

// Notes returns markdown notes for topic, verbatim from the model.
func (g *Generator) Notes(ctx context.Context, topic string) (string, error) {
	text, err := g.complete(ctx, ai.TaskNotes, notesPrompt(topic))
	if err != nil {
		return "", &GenerationError{Op: OpNotes, Err: err}
	}
	return text, nil
}

// Questions returns a five-question quiz on topic.
func (g *Generator) Questions(ctx context.Context, topic string) ([]Question, error) {
	text, err := g.complete(ctx, ai.TaskQuestions, questionsPrompt(topic))
	if err != nil {
		return nil, &GenerationError{Op: OpQuestions, Err: err}
	}

	questions, err := decode[[]Question](text, questionListSchema)
	if err != nil {
		slog.Warn("unusable quiz reply", "topic", topic, "error", err)
		return nil, &GenerationError{Op: OpQuestions, Err: err}
	}
	return questions, nil
}

// Analyze asks the model which concepts the student got wrong, given the
// quiz and the student's answers keyed by question index.
func (g *Generator) Analyze(ctx context.Context, questions []Question, userAnswers map[string]string, topic string) ([]ConceptAnalysis, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, &GenerationError{Op: OpAnalysis, Err: fmt.Errorf("marshal questions: %w", err)}
	}
	answersJSON, err := json.Marshal(userAnswers)
	if err != nil {
		return nil, &GenerationError{Op: OpAnalysis, Err: fmt.Errorf("marshal answers: %w", err)}
	}

	text, err := g.complete(ctx, ai.TaskAnalysis, analysisPrompt(topic, string(questionsJSON), string(answersJSON)))
	if err != nil {
		return nil, &GenerationError{Op: OpAnalysis, Err: err}
	}

	analysis, err := decode[[]ConceptAnalysis](text, analysisListSchema)
	if err != nil {
		slog.Warn("unusable analysis reply", "topic", topic, "error", err)
		return nil, &GenerationError{Op: OpAnalysis, Err: err}
	}
	for i := range analysis {
		if analysis[i].PracticeQuestions == nil {
			analysis[i].PracticeQuestions = []Question{}
		}
	}
	return analysis, nil
}

// DynamicAssessment returns a ten-question test (3 easy, 5 medium, 2 hard)
// aimed at the given weak concepts.
func (g *Generator) DynamicAssessment(ctx context.Context, topic string, weakConcepts []string) ([]Question, error) {
	text, err := g.complete(ctx, ai.TaskAssessment, assessmentPrompt(topic, weakConcepts))
	if err != nil {
		return nil, &GenerationError{Op: OpAssessment, Err: err}
	}

	questions, err := decode[[]Question](text, questionListSchema)
	if err != nil {
		slog.Warn("unusable assessment reply", "topic", topic, "error", err)
		return nil, &GenerationError{Op: OpAssessment, Err: err}
	}
	return questions, nil
}

func (g *Generator) complete(ctx context.Context, task ai.TaskType, prompt string) (string, error) {
	resp, err := g.ai.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Task: task,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// decode extracts a JSON list from a reply, checks its shape and decodes it.
func decode[T ~[]E, E any](text string, schema *gojsonschema.Schema) (T, error) {
	v, ok := DecodeJSON[T](text)
	if !ok {
		return nil, ErrNoPayload
	}
	if len(v) == 0 {
		return nil, ErrEmptyResult
	}
	payload, _ := ExtractJSON(text)
	if err := validate(schema, payload); err != nil {
		return nil, err
	}
	return v, nil
}
