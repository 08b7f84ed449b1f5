package daily

import (
	"slices"
	"testing"
	"time"
)

func TestSeriesAppendKeepsOrder(t *testing.T) {
	s := new(Series[string])
	d1, v1 := New(2025, time.July, 1), "later"
	d2, v2 := New(2024, time.July, 1), "earlier"

	if s.Len() != 0 {
		t.Errorf("Series.Len() = %v want 0", s.Len())
	}

	s.Append(d1, v1)
	s.Append(d2, v2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %v want 2", s.Len())
	}
	if s.days[0] != d2 || s.days[1] != d1 {
		t.Errorf("days = %v want [%v %v]", s.days, d2, d1)
	}
	if s.values[0] != v2 || s.values[1] != v1 {
		t.Errorf("values = %v want [%v %v]", s.values, v2, v1)
	}

	// Appending on an existing date overwrites.
	s.Append(d2, "replaced")
	if s.Len() != 2 {
		t.Errorf("Len() after overwrite = %v want 2", s.Len())
	}
	if got, _ := s.Get(d2); got != "replaced" {
		t.Errorf("Get(d2) = %v want replaced", got)
	}
}

func TestSeriesAsOf(t *testing.T) {
	s := new(Series[float64])
	s.Append(New(2024, time.January, 2), 100)
	s.Append(New(2024, time.January, 5), 105)

	tests := []struct {
		name string
		day  Date
		want float64
		ok   bool
	}{
		{"before first", New(2024, time.January, 1), 0, false},
		{"exact", New(2024, time.January, 2), 100, true},
		{"gap forward-fills", New(2024, time.January, 4), 100, true},
		{"after last", New(2024, time.February, 1), 105, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.AsOf(tc.day)
			if ok != tc.ok || got != tc.want {
				t.Errorf("AsOf(%v) = (%v, %v) want (%v, %v)", tc.day, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	a := []Date{New(2024, time.January, 1), New(2024, time.January, 3)}
	b := []Date{New(2024, time.January, 2), New(2024, time.January, 3), New(2024, time.January, 4)}

	var got []Date
	for on := range Union(a, b) {
		got = append(got, on)
	}
	want := []Date{
		New(2024, time.January, 1),
		New(2024, time.January, 2),
		New(2024, time.January, 3),
		New(2024, time.January, 4),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Union() = %v want %v", got, want)
	}
}
