// Package store owns the ordered collection of wine records. Append and
// delete-by-position are its only mutators, and every mutation is persisted
// wholesale before it becomes visible.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"winemap/internal/enrich"
	"winemap/internal/imageenc"
	"winemap/internal/models"
	"winemap/internal/resolver"
)

// Resolver turns a place name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, place string) (models.Location, error)
}

// Persister writes the full collection.
type Persister interface {
	Save(ctx context.Context, records []models.WineRecord) error
}

// Notifier is told about committed mutations.
type Notifier interface {
	Notify(ctx context.Context, event models.RecordEvent) error
}

// Recorder receives store metrics.
type Recorder interface {
	ObserveAdd(size int)
	ObserveAddFailure(reason string)
	ObserveDelete(size int)
	SetSize(size int)
}

// ConfirmFunc asks the user whether the record at index may be deleted.
type ConfirmFunc func(index int, record models.WineRecord) bool

// Confirmed approves every deletion. Use it when the confirmation already
// happened elsewhere, e.g. an explicit flag.
func Confirmed(int, models.WineRecord) bool { return true }

// Options holds the optional collaborators of a Store.
type Options struct {
	Notifier Notifier
	Recorder Recorder
	Logger   *zap.Logger
}

// Store is safe for concurrent use. Only one Add may be outstanding at a
// time; readers always see the last committed collection.
type Store struct {
	mu      sync.RWMutex
	records []models.WineRecord

	adding   atomic.Bool
	prepare  *enrich.Pipeline[addJob]
	persist  Persister
	notifier Notifier
	recorder Recorder
	logger   *zap.Logger
}

// New returns a Store holding initial, usually the hydrated collection.
func New(initial []models.WineRecord, res Resolver, persist Persister, opts Options) *Store {
	s := &Store{
		records:  slices.Clone(initial),
		persist:  persist,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	if s.records == nil {
		s.records = []models.WineRecord{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.prepare = newAddPipeline(res)
	if s.recorder != nil {
		s.recorder.SetSize(len(s.records))
	}
	return s
}

// Records returns a copy of the committed collection.
func (s *Store) Records() []models.WineRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of committed records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Filter applies c to the committed collection.
func (s *Store) Filter(c Criteria) []models.WineRecord {
	return Filter(s.Records(), c)
}

// Entries applies c to the committed collection, keeping indices.
func (s *Store) Entries(c Criteria) []Entry {
	return FilterEntries(s.Records(), c)
}

// Adding reports whether an add is outstanding.
func (s *Store) Adding() bool {
	return s.adding.Load()
}

// Add validates draft, resolves its location, encodes an attached image,
// appends the record and persists the collection. On success the draft is
// reset; on failure nothing is mutated and the draft is left as it was.
func (s *Store) Add(ctx context.Context, draft *models.Draft) (models.WineRecord, error) {
	if !s.adding.CompareAndSwap(false, true) {
		s.observeFailure(ErrAddInFlight)
		return models.WineRecord{}, ErrAddInFlight
	}
	defer s.adding.Store(false)

	job := &addJob{draft: *draft}
	if err := s.prepare.Run(ctx, job); err != nil {
		var stageErr *enrich.StageError
		if errors.As(err, &stageErr) {
			s.logger.Debug("add rejected", zap.String("stage", stageErr.Stage), zap.Error(stageErr.Err))
			err = stageErr.Err
		}
		s.observeFailure(err)
		return models.WineRecord{}, err
	}
	record := models.NewWineRecord(job.draft, job.location.Coordinates, job.image)

	s.mu.Lock()
	next := append(slices.Clone(s.records), record)
	if err := s.persist.Save(ctx, next); err != nil {
		s.mu.Unlock()
		s.observeFailure(err)
		return models.WineRecord{}, fmt.Errorf("persist collection: %w", err)
	}
	s.records = next
	index, size := len(next)-1, len(next)
	s.mu.Unlock()

	s.logger.Info("record added",
		zap.String("id", record.ID.String()),
		zap.String("name", record.Name),
		zap.String("location", record.Location),
		zap.String("source", job.location.Source),
		zap.Int("index", index),
	)
	if s.recorder != nil {
		s.recorder.ObserveAdd(size)
	}
	s.notify(ctx, models.EventAdded, index, record)
	draft.Reset()
	return record, nil
}

// Delete removes the record at index once confirm approves it. An
// out-of-range index, a declined or nil confirmation, or a collection that
// changed while confirming are all no-ops reported as false.
func (s *Store) Delete(ctx context.Context, index int, confirm ConfirmFunc) (bool, error) {
	s.mu.RLock()
	if index < 0 || index >= len(s.records) {
		s.mu.RUnlock()
		return false, nil
	}
	target := s.records[index]
	s.mu.RUnlock()

	// Confirmation may block on the user, so no lock is held here.
	if confirm == nil || !confirm(index, target) {
		return false, nil
	}

	s.mu.Lock()
	if index >= len(s.records) || s.records[index].ID != target.ID {
		s.mu.Unlock()
		s.logger.Warn("collection changed during confirmation, delete skipped", zap.Int("index", index))
		return false, nil
	}
	next := slices.Delete(slices.Clone(s.records), index, index+1)
	if err := s.persist.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("persist collection: %w", err)
	}
	s.records = next
	size := len(next)
	s.mu.Unlock()

	s.logger.Info("record deleted", zap.String("id", target.ID.String()), zap.Int("index", index))
	if s.recorder != nil {
		s.recorder.ObserveDelete(size)
	}
	s.notify(ctx, models.EventDeleted, index, target)
	return true, nil
}

func (s *Store) notify(ctx context.Context, kind models.EventKind, index int, record models.WineRecord) {
	if s.notifier == nil {
		return
	}
	event := models.RecordEvent{Kind: kind, Index: index, Record: record, At: time.Now().UTC()}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("failed to publish record event", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *Store) observeFailure(err error) {
	if s.recorder != nil {
		s.recorder.ObserveAddFailure(FailureReason(err))
	}
}

// FailureReason maps an Add error to a short label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, resolver.ErrLocationNotFound):
		return "location_not_found"
	case errors.Is(err, imageenc.ErrEncoding):
		return "encoding"
	case errors.Is(err, ErrAddInFlight):
		return "in_flight"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, resolver.ErrGeocoder):
		return "geocoder"
	default:
		return "internal"
	}
}

func validateDraft(d models.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return &ValidationError{Field: "location", Reason: "is required"}
	}
	if d.ImageURL != "" && !imageenc.IsWebURL(d.ImageURL) {
		return &ValidationError{Field: "imageUrl", Reason: "must be an http or https URL"}
	}
	if !d.Type.Normalize().Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not a known wine type", d.Type)}
	}
	return nil
}
