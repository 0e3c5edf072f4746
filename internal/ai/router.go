package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoProvider is returned when no provider is registered.
var ErrNoProvider = errors.New("no AI provider registered")

// Router sends each request to exactly one provider: the one pinned to the
// request's task, or the first registered provider. A provider failure is
// returned to the caller as is; the router never retries or falls back.
type Router struct {
	providers map[string]Provider
	order     []string
	routes    map[TaskType]string
	mu        sync.RWMutex
}

// NewRouter creates a new AI router.
func NewRouter() *Router {
	return &Router{
		providers: make(map[string]Provider),
		routes:    make(map[TaskType]string),
	}
}

// Register adds a provider to the router. The first registered provider
// serves every task that is not pinned.
func (r *Router) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = provider
}

// Route pins a task to a registered provider.
func (r *Router) Route(task TaskType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("unknown AI provider %q", name)
	}
	r.routes[task] = name
	return nil
}

// Complete routes a request to the provider for its task.
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	name, provider, err := r.pick(req.Task)
	if err != nil {
		return CompletionResponse{}, err
	}

	resp, err := provider.Complete(ctx, req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("%s: %w", name, err)
	}

	slog.Debug("AI request completed",
		"provider", name,
		"task", req.Task.String(),
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"total_tokens", resp.TotalTokens(),
	)
	return resp, nil
}

// HealthCheck checks the default provider.
func (r *Router) HealthCheck(ctx context.Context) error {
	name, provider, err := r.pick(-1)
	if err != nil {
		return err
	}
	if err := provider.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// HasProvider returns true if at least one provider is registered.
func (r *Router) HasProvider() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers) > 0
}

func (r *Router) pick(task TaskType) (string, Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return "", nil, ErrNoProvider
	}
	name, ok := r.routes[task]
	if !ok {
		name = r.order[0]
	}
	return name, r.providers[name], nil
}
