package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeekFromTime(t *testing.T) {
	cases := map[time.Weekday]int{
		time.Monday:    2,
		time.Tuesday:   3,
		time.Wednesday: 4,
		time.Thursday:  5,
		time.Friday:    6,
		time.Saturday:  7,
		time.Sunday:    8,
	}
	for weekday, want := range cases {
		assert.Equal(t, want, DayOfWeekFromTime(weekday), weekday.String())
	}
}

func TestDayColumn(t *testing.T) {
	assert.Equal(t, 0, DayColumn(DayMonday))
	assert.Equal(t, 2, DayColumn(4))
	assert.Equal(t, 6, DayColumn(DaySunday))
	assert.Equal(t, -1, DayColumn(0))
	assert.Equal(t, -1, DayColumn(1))
	assert.Equal(t, -1, DayColumn(9))
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Thứ 2", DayName(DayMonday))
	assert.Equal(t, "Chủ nhật", DayName(DaySunday))
	assert.Equal(t, "", DayName(1))
}

func TestWeekWindowContains(t *testing.T) {
	// Monday 2025-01-06.
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	window := WeekWindow{StartDate: start}

	assert.True(t, window.Contains(start))
	assert.True(t, window.Contains(start.AddDate(0, 0, 6)))
	assert.False(t, window.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, window.Contains(start.AddDate(0, 0, 7)))

	// Time-of-day never matters.
	assert.True(t, window.Contains(start.AddDate(0, 0, 6).Add(23*time.Hour+59*time.Minute)))
}

func TestWeekWindowEndDate(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	window := WeekWindow{StartDate: start}
	require.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), window.EndDate())
}

func TestFormatDateLabel(t *testing.T) {
	assert.Equal(t, "06/01/2025", FormatDateLabel(time.Date(2025, 1, 6, 15, 4, 5, 0, time.UTC)))
}

func TestScheduleOccurrenceHasTemporalFields(t *testing.T) {
	valid := ScheduleOccurrence{DayOfWeek: 4, Shift: ShiftMorning, TimeSlotOrder: 1}
	assert.True(t, valid.HasTemporalFields())

	noDay := valid
	noDay.DayOfWeek = 0
	assert.False(t, noDay.HasTemporalFields())

	noSlot := valid
	noSlot.TimeSlotOrder = 0
	assert.False(t, noSlot.HasTemporalFields())

	badShift := valid
	badShift.Shift = "night"
	assert.False(t, badShift.HasTemporalFields())
}

func TestScheduleTypeFilterMatches(t *testing.T) {
	assert.True(t, TypeFilterAll.Matches(OccurrenceTheory))
	assert.True(t, TypeFilterAll.Matches(OccurrenceExam))

	assert.True(t, TypeFilterStudy.Matches(OccurrenceTheory))
	assert.True(t, TypeFilterStudy.Matches(OccurrencePractice))
	assert.False(t, TypeFilterStudy.Matches(OccurrenceExam))

	assert.True(t, TypeFilterExam.Matches(OccurrenceExam))
	assert.False(t, TypeFilterExam.Matches(OccurrenceTheory))
}
