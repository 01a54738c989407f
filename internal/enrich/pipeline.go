package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// StageError records which stage a step failed in. Its message is prefixed
// with the stage name; Unwrap returns the step's error unchanged.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline applies a sequence of stages to one item. Within a stage all
// steps start together and the stage completes when every step returned.
// The first failing step aborts the run: its stage is canceled and later
// stages never start.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages, applied in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run executes every stage against item and returns the first step error as
// a *StageError.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) error {
	for _, stage := range p.stages {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range stage.steps {
			g.Go(func() error {
				return step(gctx, item)
			})
		}
		// stage barrier
		if err := g.Wait(); err != nil {
			return &StageError{Stage: stage.name, Err: err}
		}
	}
	return nil
}
