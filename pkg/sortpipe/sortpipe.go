// Package sortpipe provides stable, multi-key ordering of record slices.
package sortpipe

import (
	"cmp"
	"slices"
	"time"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection maps "desc" to Desc and anything else to Asc.
func ParseDirection(s string) Direction {
	if s == "desc" {
		return Desc
	}
	return Asc
}

// Key compares two records on one criterion.
type Key[T any] struct {
	Compare   func(a, b T) int
	Direction Direction
}

func (k Key[T]) Reverse() Key[T] {
	if k.Direction == Asc {
		k.Direction = Desc
	} else {
		k.Direction = Asc
	}
	return k
}

func (k Key[T]) Dir(d Direction) Key[T] {
	k.Direction = d
	return k
}

// Pipeline is an ordered list of keys; later keys break ties of earlier ones.
type Pipeline[T any] []Key[T]

func New[T any](keys ...Key[T]) Pipeline[T] {
	return Pipeline[T](keys)
}

// Compare applies every key in turn.
func (p Pipeline[T]) Compare(a, b T) int {
	for _, k := range p {
		c := k.Compare(a, b)
		if k.Direction == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Sort returns a sorted copy. Records equal on all keys keep their input order.
func (p Pipeline[T]) Sort(records []T) []T {
	out := slices.Clone(records)
	slices.SortStableFunc(out, p.Compare)
	return out
}

func ByTime[T any](f func(T) time.Time) Key[T] {
	return Key[T]{Compare: func(a, b T) int { return f(a).Compare(f(b)) }}
}

func ByInt[T any](f func(T) int) Key[T] {
	return Key[T]{Compare: func(a, b T) int { return cmp.Compare(f(a), f(b)) }}
}

func ByString[T any](f func(T) string) Key[T] {
	return Key[T]{Compare: func(a, b T) int { return cmp.Compare(f(a), f(b)) }}
}

func ByDay[T any](f func(T) datekey.Day) Key[T] {
	return Key[T]{Compare: func(a, b T) int { return f(a).Compare(f(b)) }}
}

func ByClock[T any](f func(T) datekey.Clock) Key[T] {
	return Key[T]{Compare: func(a, b T) int { return f(a).Compare(f(b)) }}
}
