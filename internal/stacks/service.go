// Package stacks fetches the stack list for a request and applies the
// portal's failure policy: a broken upstream yields an empty, degraded
// result instead of an error.
package stacks

import (
	"context"
	"log/slog"
	"time"

	"github.com/minicloud/portal/internal/model"
)

// State describes where a Result came from.
type State string

const (
	StateLive     State = "live"     // the configured source answered
	StateMock     State = "mock"     // demo data, no token configured
	StateDegraded State = "degraded" // the source failed; Stacks is empty
)

// Result is the outcome of one fetch. Stacks is never nil.
type Result struct {
	Stacks []model.Stack
	State  State
	Source string
	// Err is the swallowed source error when State is StateDegraded.
	Err error
}

// Degraded reports whether the source failed.
func (r Result) Degraded() bool { return r.State == StateDegraded }

// FetchRecorder observes fetch outcomes.
type FetchRecorder interface {
	RecordFetch(source, state string, elapsed time.Duration)
}

// Service resolves the stack list for each request. It holds no state
// between calls: every Fetch hits the source once.
type Service struct {
	source   Source
	mock     bool
	logger   *slog.Logger
	recorder FetchRecorder
}

// NewService creates a Service over source. mock marks the source as demo
// data so results report StateMock. recorder may be nil.
func NewService(source Source, mock bool, logger *slog.Logger, recorder FetchRecorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:   source,
		mock:     mock,
		logger:   logger.With("module", "stacks", "source", source.Name()),
		recorder: recorder,
	}
}

// Fetch lists stacks. Source errors are logged and collapsed into an empty
// degraded Result; Fetch itself never fails.
func (s *Service) Fetch(ctx context.Context) Result {
	start := time.Now()
	res := s.fetch(ctx)
	elapsed := time.Since(start)

	if s.recorder != nil {
		s.recorder.RecordFetch(res.Source, string(res.State), elapsed)
	}
	return res
}

func (s *Service) fetch(ctx context.Context) Result {
	name := s.source.Name()

	stacks, err := s.source.ListStacks(ctx)
	if err != nil {
		s.logger.Error("fetch stacks failed", "err", err)
		return Result{Stacks: []model.Stack{}, State: StateDegraded, Source: name, Err: err}
	}
	if stacks == nil {
		stacks = []model.Stack{}
	}

	state := StateLive
	if s.mock {
		state = StateMock
	}
	s.logger.Debug("stacks fetched", "count", len(stacks), "state", state)
	return Result{Stacks: stacks, State: state, Source: name}
}
