// Package slots computes bookable time slots for a single court and date.
// Courts are bookable on exact hour boundaries between OpenHour and
// CloseHour; a reservation occupies the half-open interval
// [StartHour, EndHour). All functions are pure and never return errors:
// input outside the bookable grid degrades to an empty result, since
// callers are expected to feed back values the package itself produced.
package slots

import "time"

const (
	// OpenHour is the first bookable hour mark of a day.
	OpenHour = 6
	// CloseHour is the last hour mark; bookings may end here but not start.
	CloseHour = 22
)

// HourRange is a reserved half-open interval [Start, End) in whole hours.
type HourRange struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open hour intervals intersect.
// Back-to-back ranges (a.End == b.Start) do not overlap.
func Overlaps(a, b HourRange) bool {
	return max(a.Start, b.Start) < min(a.End, b.End)
}

// HourMarks returns every bookable hour boundary, OpenHour through
// CloseHour inclusive, in ascending order.
func HourMarks() []int {
	marks := make([]int, 0, CloseHour-OpenHour+1)
	for hour := OpenHour; hour <= CloseHour; hour++ {
		marks = append(marks, hour)
	}

	return marks
}

func overlapsAny(existing []HourRange, candidate HourRange) bool {
	for _, reserved := range existing {
		if Overlaps(reserved, candidate) {
			return true
		}
	}

	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// AvailableStartHours returns the hours at which a reservation of at least
// one hour can still begin, ascending. The last mark of the day never
// qualifies. When date falls on the same calendar day as now, hours up to
// and including the current hour are excluded. An empty result means the
// day is fully booked.
func AvailableStartHours(existing []HourRange, date, now time.Time) []int {
	hours := []int{}

	for hour := OpenHour; hour < CloseHour; hour++ {
		if sameDay(date, now) && hour <= now.Hour() {
			continue
		}

		if overlapsAny(existing, HourRange{Start: hour, End: hour + 1}) {
			continue
		}

		hours = append(hours, hour)
	}

	return hours
}

// AvailableEndHours returns the hours at which a reservation beginning at
// start may end, ascending. The scan walks the marks after start and stops
// at the first candidate whose interval [start, candidate) would collide
// with an existing reservation, yielding the maximal contiguous free run.
func AvailableEndHours(existing []HourRange, start int) []int {
	hours := []int{}

	if start < OpenHour || start >= CloseHour {
		return hours
	}

	for hour := start + 1; hour <= CloseHour; hour++ {
		if overlapsAny(existing, HourRange{Start: start, End: hour}) {
			break
		}

		hours = append(hours, hour)
	}

	return hours
}

// Duration returns the booked length in hours, or 0 when the selection is
// incomplete or inverted. Callers treat 0 as "not submittable".
func Duration(start, end int) int {
	if end > start {
		return end - start
	}

	return 0
}
