package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
)

const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
)

// Observer is called after every mutation with the operation and the new size.
type Observer func(op string, size int)

type options struct {
	newID    func() string
	observer Observer
}

type Option func(*options)

// WithIDGenerator overrides the id assigned to records added without one.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// Store is an in-memory repository.Store. Mutations build a new backing
// slice and swap it in under the write lock.
type Store[T repository.Record[T]] struct {
	mu       sync.RWMutex
	records  []T
	index    map[string]int
	revision uint64
	opts     options
}

var _ repository.PatientRepository = (*Store[model.Patient])(nil)

func New[T repository.Record[T]](opts ...Option) *Store[T] {
	o := options{newID: func() string { return uuid.New().String() }}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{index: map[string]int{}, opts: o}
}

// NewWith builds a store already holding records.
func NewWith[T repository.Record[T]](records []T, opts ...Option) *Store[T] {
	s := New[T](opts...)
	for _, r := range records {
		s.Add(r)
	}
	return s
}

func (s *Store[T]) Add(record T) T {
	if record.RecordID() == "" {
		record = record.WithID(s.opts.newID())
	}
	record = clone(record)

	s.mu.Lock()
	next := make([]T, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, record)
	s.swap(next)
	size := len(next)
	s.mu.Unlock()

	s.notify(OpAdd, size)
	return clone(record)
}

func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	next := make([]T, 0, len(s.records)-1)
	next = append(next, s.records[:pos]...)
	next = append(next, s.records[pos+1:]...)
	s.swap(next)
	size := len(next)
	s.mu.Unlock()

	s.notify(OpRemove, size)
	return true
}

func (s *Store[T]) FindByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(s.records[pos]), true
}

func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	for i, r := range s.records {
		out[i] = clone(r)
	}
	return out
}

func (s *Store[T]) Update(id string, fn func(T) (T, error)) (T, error) {
	var zero T

	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	updated, err := fn(clone(s.records[pos]))
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}
	updated = clone(updated.WithID(id))
	next := make([]T, len(s.records))
	copy(next, s.records)
	next[pos] = updated
	s.swap(next)
	size := len(next)
	s.mu.Unlock()

	s.notify(OpUpdate, size)
	return clone(updated), nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store[T]) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// swap must be called with the write lock held.
func (s *Store[T]) swap(next []T) {
	index := make(map[string]int, len(next))
	for i, r := range next {
		if _, dup := index[r.RecordID()]; !dup {
			index[r.RecordID()] = i
		}
	}
	s.records = next
	s.index = index
	s.revision++
}

func (s *Store[T]) notify(op string, size int) {
	if s.opts.observer != nil {
		s.opts.observer(op, size)
	}
}

func clone[T any](record T) T {
	if c, ok := any(record).(repository.Cloner[T]); ok {
		return c.Clone()
	}
	return record
}
