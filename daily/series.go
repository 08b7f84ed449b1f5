package daily

import (
	"iter"
	"slices"
)

// Series stores a chronological sequence of values, each associated with a
// date. Dates are unique and the sequence is always sorted; appending a
// value on an existing date overwrites it.
type Series[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the series.
func (s *Series[T]) Len() int { return len(s.days) }

// First returns the earliest date and value, or zero values when empty.
func (s *Series[T]) First() (day Date, value T) {
	if len(s.days) == 0 {
		return Date{}, *new(T)
	}
	return s.days[0], s.values[0]
}

// Latest returns the most recent date and value, or zero values when empty.
func (s *Series[T]) Latest() (day Date, value T) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return s.days[last], s.values[last]
}

// search locates the insertion index for day.
func (s *Series[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(s.days, day, Date.Compare)
}

// Append adds a point to the series, keeping it sorted.
// An existing value at that date is overwritten.
func (s *Series[T]) Append(on Date, v T) *Series[T] {
	i, found := s.search(on)
	if found {
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value exactly at day, if any.
func (s *Series[T]) Get(day Date) (T, bool) {
	if i, found := s.search(day); found {
		return s.values[i], true
	}
	return *new(T), false
}

// AsOf returns the value on a given day, or the most recent value before
// it. This is the forward-fill lookup: gaps resolve to the last known
// value, never to an interpolation.
func (s *Series[T]) AsOf(day Date) (T, bool) {
	i, found := s.search(day)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		return *new(T), false // no point on or before day
	}
	return s.values[i-1], true
}

// Values returns an iterator over all date/value pairs in chronological order.
func (s *Series[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Dates returns the sorted dates of the series. The slice is shared, not copied.
func (s *Series[T]) Dates() []Date { return s.days }

// Union returns an iterator over the sorted union of several date slices,
// each assumed sorted. Every distinct date is yielded exactly once.
func Union(series ...[]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(series))
		for {
			// find the minimum date not yet consumed across all series
			var m Date
			found := false
			for i, index := range indexes {
				if index >= len(series[i]) {
					continue
				}
				if on := series[i][index]; !found || on.Before(m) {
					m, found = on, true
				}
			}
			if !found {
				return // all series consumed
			}
			// consume the minimum wherever it appears
			for i, index := range indexes {
				if index < len(series[i]) && series[i][index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}
