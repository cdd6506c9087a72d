// Package mocks provides in-memory stand-ins for the tracing layer.
package mocks

import (
	"context"
	"roomify/infras/otel"
	"sync"
)

// Recorder is an otel.Otel that keeps span names, events and errors in
// memory instead of exporting them.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	events []string
	errors map[string][]error
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.spans = append(r.spans, spanName)
	r.mu.Unlock()

	return ctx, &recordedScope{recorder: r, span: spanName}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Spans returns the names of all scopes opened so far, in order.
func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

// Errors returns the errors traced on the named span.
func (r *Recorder) Errors(span string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors[span]...)
}

type recordedScope struct {
	recorder *Recorder
	span     string
}

func (s *recordedScope) End() {}

func (s *recordedScope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	if s.recorder.errors == nil {
		s.recorder.errors = make(map[string][]error)
	}

	s.recorder.errors[s.span] = append(s.recorder.errors[s.span], err)
}

func (s *recordedScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *recordedScope) AddEvent(name string) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.events = append(s.recorder.events, name)
}

func (s *recordedScope) SetAttribute(_ string, _ any) {}

func (s *recordedScope) SetAttributes(_ map[string]any) {}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewOtel returns a tracer whose scopes are recorded and then discarded.
func NewOtel() otel.Otel {
	return NewRecorder()
}
