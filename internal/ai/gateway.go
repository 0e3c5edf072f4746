// Package ai provides a provider-agnostic text-generation gateway with
// task-based routing.
package ai

import "context"

// TaskType identifies what a completion is for, so the router can pin a
// task to a particular provider.
type TaskType int

const (
	TaskNotes TaskType = iota
	TaskQuestions
	TaskAnalysis
	TaskAssessment
)

func (t TaskType) String() string {
	switch t {
	case TaskNotes:
		return "notes"
	case TaskQuestions:
		return "questions"
	case TaskAnalysis:
		return "analysis"
	case TaskAssessment:
		return "assessment"
	default:
		return "unknown"
	}
}

// ParseTask returns the task named by s, as printed by String.
func ParseTask(s string) (TaskType, bool) {
	for _, t := range []TaskType{TaskNotes, TaskQuestions, TaskAnalysis, TaskAssessment} {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Message represents a chat message. Role is "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to an AI completion.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Task        TaskType  `json:"task,omitempty"`
}

// CompletionResponse is the output from an AI completion.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Provider is the interface all AI providers must implement.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	HealthCheck(ctx context.Context) error
}
