package mocks

import (
	"context"
	"sync"
	"venuebook/infras/otel"
)

// Recorder is an otel.Otel that hands out recording scopes.
type Recorder struct {
	mu     sync.Mutex
	scopes map[string][]*Scope
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{scopes: map[string][]*Scope{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := newScope()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.scopes[spanName] = append(r.scopes[spanName], scope)

	return ctx, scope
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the latest scope opened under spanName, or nil.
func (r *Recorder) Scope(spanName string) *Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes := r.scopes[spanName]
	if len(scopes) == 0 {
		return nil
	}

	return scopes[len(scopes)-1]
}
