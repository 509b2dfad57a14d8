package slots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/domains/reservation/slots"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        slots.HourRange
		b        slots.HourRange
		expected bool
	}{
		{
			name:     "identical ranges overlap",
			a:        slots.HourRange{Start: 9, End: 11},
			b:        slots.HourRange{Start: 9, End: 11},
			expected: true,
		},
		{
			name:     "partial overlap at the tail",
			a:        slots.HourRange{Start: 9, End: 11},
			b:        slots.HourRange{Start: 10, End: 12},
			expected: true,
		},
		{
			name:     "containment overlaps",
			a:        slots.HourRange{Start: 8, End: 14},
			b:        slots.HourRange{Start: 10, End: 11},
			expected: true,
		},
		{
			name:     "back to back does not overlap",
			a:        slots.HourRange{Start: 9, End: 11},
			b:        slots.HourRange{Start: 11, End: 13},
			expected: false,
		},
		{
			name:     "disjoint ranges do not overlap",
			a:        slots.HourRange{Start: 6, End: 8},
			b:        slots.HourRange{Start: 12, End: 14},
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, slots.Overlaps(test.a, test.b))
			assert.Equal(t, test.expected, slots.Overlaps(test.b, test.a))
		})
	}
}

func TestHourMarks(t *testing.T) {
	marks := slots.HourMarks()

	assert.Len(t, marks, 17)
	assert.Equal(t, 6, marks[0])
	assert.Equal(t, 22, marks[len(marks)-1])

	for i := 1; i < len(marks); i++ {
		assert.Equal(t, marks[i-1]+1, marks[i])
	}
}

func TestAvailableStartHours(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	date := time.Date(2026, time.September, 5, 0, 0, 0, 0, jakarta)
	dayBefore := time.Date(2026, time.September, 4, 20, 0, 0, 0, jakarta)

	tests := []struct {
		name     string
		existing []slots.HourRange
		date     time.Time
		now      time.Time
		expected []int
	}{
		{
			name:     "empty day on a future date offers every start",
			existing: nil,
			date:     date,
			now:      dayBefore,
			expected: []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
		},
		{
			name:     "reserved hours are excluded",
			existing: []slots.HourRange{{Start: 9, End: 11}},
			date:     date,
			now:      dayBefore,
			expected: []int{6, 7, 8, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
		},
		{
			name:     "same day drops the current hour and everything before it",
			existing: nil,
			date:     date,
			now:      time.Date(2026, time.September, 5, 14, 30, 0, 0, jakarta),
			expected: []int{15, 16, 17, 18, 19, 20, 21},
		},
		{
			name: "same day cutoff combines with reservations",
			existing: []slots.HourRange{
				{Start: 16, End: 18},
			},
			date:     date,
			now:      time.Date(2026, time.September, 5, 14, 0, 0, 0, jakarta),
			expected: []int{15, 18, 19, 20, 21},
		},
		{
			name: "fully booked day has no starts",
			existing: []slots.HourRange{
				{Start: 6, End: 22},
			},
			date:     date,
			now:      dayBefore,
			expected: []int{},
		},
		{
			name:     "late same day leaves nothing",
			existing: nil,
			date:     date,
			now:      time.Date(2026, time.September, 5, 21, 5, 0, 0, jakarta),
			expected: []int{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, slots.AvailableStartHours(test.existing, test.date, test.now))
		})
	}
}

func TestAvailableEndHours(t *testing.T) {
	tests := []struct {
		name     string
		existing []slots.HourRange
		start    int
		expected []int
	}{
		{
			name:     "empty day from opening offers every end",
			existing: nil,
			start:    6,
			expected: []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22},
		},
		{
			name:     "scan stops at the next reservation",
			existing: []slots.HourRange{{Start: 9, End: 11}},
			start:    8,
			expected: []int{9},
		},
		{
			name:     "start after a reservation runs to close",
			existing: []slots.HourRange{{Start: 9, End: 11}},
			start:    11,
			expected: []int{12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22},
		},
		{
			name:     "start inside a reservation yields nothing",
			existing: []slots.HourRange{{Start: 9, End: 11}},
			start:    9,
			expected: []int{},
		},
		{
			name:     "start at closing is not bookable",
			existing: nil,
			start:    22,
			expected: []int{},
		},
		{
			name:     "start before opening is not bookable",
			existing: nil,
			start:    5,
			expected: []int{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, slots.AvailableEndHours(test.existing, test.start))
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		expected int
	}{
		{name: "one hour", start: 9, end: 10, expected: 1},
		{name: "multi hour", start: 9, end: 13, expected: 4},
		{name: "equal marks", start: 9, end: 9, expected: 0},
		{name: "inverted selection", start: 13, end: 9, expected: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, slots.Duration(test.start, test.end))
		})
	}
}

func TestStartAndEndHoursCompose(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	date := time.Date(2026, time.September, 5, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, time.September, 4, 9, 0, 0, 0, jakarta)

	existing := []slots.HourRange{
		{Start: 8, End: 10},
		{Start: 14, End: 16},
	}

	for _, start := range slots.AvailableStartHours(existing, date, now) {
		ends := slots.AvailableEndHours(existing, start)
		assert.NotEmptyf(t, ends, "start %d offered without a valid end", start)

		for _, end := range ends {
			assert.Positive(t, slots.Duration(start, end))
			assert.False(t, slots.Overlaps(existing[0], slots.HourRange{Start: start, End: end}))
			assert.False(t, slots.Overlaps(existing[1], slots.HourRange{Start: start, End: end}))
		}
	}
}
