// Package search filters record slices by free-text queries and exact-match
// criteria.
package search

import "strings"

// Field extracts a searchable string from a record. Missing values are "".
type Field[T any] func(T) string

// Predicate reports whether a record is kept.
type Predicate[T any] func(T) bool

// Text matches records where any field contains query, ignoring case. Only
// the empty query matches everything; whitespace is matched literally.
func Text[T any](query string, fields ...Field[T]) Predicate[T] {
	q := strings.ToLower(query)
	if q == "" {
		return All[T]()
	}
	return func(r T) bool {
		for _, f := range fields {
			if f == nil {
				continue
			}
			if strings.Contains(strings.ToLower(f(r)), q) {
				return true
			}
		}
		return false
	}
}

// ContainsExact is a case-sensitive substring match on a single field.
func ContainsExact[T any](query string, field Field[T]) Predicate[T] {
	if query == "" {
		return All[T]()
	}
	return func(r T) bool {
		return strings.Contains(field(r), query)
	}
}

// Equal keeps records whose field equals want. An empty want disables the
// filter.
func Equal[T any](field Field[T], want string) Predicate[T] {
	if want == "" {
		return All[T]()
	}
	return func(r T) bool {
		return field(r) == want
	}
}

// Any combines predicates with OR.
func Any[T any](preds ...Predicate[T]) Predicate[T] {
	return func(r T) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Filter returns the records matching every predicate, in input order. The
// input slice is never modified.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if p != nil && !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}
