// Package enrich provides a small, generic pipeline abstraction that runs
// independent steps in parallel within a stage, while enforcing sequential
// execution between stages.
package enrich

import (
	"context"
)

// Step is a single operation that mutates the given item. Steps in the same
// stage run concurrently and must write to disjoint fields of the item.
// The context is canceled as soon as a sibling step fails.
//
// Example:
//
//	func resolve(ctx context.Context, j *AddJob) error { j.Location, err = ...; return err }
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single item.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a named Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}

// Name returns the label the stage was built with.
func (s Stage[T]) Name() string { return s.name }
