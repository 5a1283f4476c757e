// Package slot holds the half-hour grid used by timetables and appointments.
package slot

import (
	"iter"
	"time"
)

const (
	// Step is the distance between two consecutive bookable instants.
	Step = 30 * time.Minute

	// MaxWindow is the longest span a single timetable may cover.
	MaxWindow = 12 * time.Hour
)

// Aligned reports whether t sits on HH:00:00 or HH:30:00 of its own clock.
func Aligned(t time.Time) bool {
	return t.Nanosecond() == 0 && t.Second() == 0 && t.Minute()%30 == 0
}

// Enumerate yields from, from+Step, ... up to and including to.
// The sequence is lazy and can be ranged over any number of times.
func Enumerate(from, to time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for t := from; !t.After(to); t = t.Add(Step) {
			if !yield(t) {
				return
			}
		}
	}
}

// Count returns how many instants Enumerate yields for a window.
func Count(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from)/Step) + 1
}

// Within reports whether t lies inside the closed window [from, to].
func Within(from, to, t time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
