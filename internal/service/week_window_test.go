package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWeekWindowFromMidweek(t *testing.T) {
	// Wednesday 2025-01-08.
	window := ComputeWeekWindow(time.Date(2025, 1, 8, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), window.StartDate)
	require.Len(t, window.Days, 7)
	assert.Equal(t, 2, window.Days[0].DayOfWeek)
	assert.Equal(t, 8, window.Days[6].DayOfWeek)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), window.Days[6].Date)
}

func TestComputeWeekWindowFromMonday(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	window := ComputeWeekWindow(monday)
	assert.Equal(t, monday, window.StartDate)
}

func TestComputeWeekWindowFromSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	window := ComputeWeekWindow(sunday)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), window.StartDate)
	assert.True(t, window.Contains(sunday))
}

func TestComputeWeekWindowDaysAreConsecutive(t *testing.T) {
	window := ComputeWeekWindow(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	for i := 1; i < len(window.Days); i++ {
		assert.Equal(t, window.Days[i-1].Date.AddDate(0, 0, 1), window.Days[i].Date)
		assert.Equal(t, window.Days[i-1].DayOfWeek+1, window.Days[i].DayOfWeek)
	}
}

func TestComputeWeekWindowLabels(t *testing.T) {
	window := ComputeWeekWindow(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Thứ 2 06/01/2025", window.Days[0].Label)
	assert.Equal(t, "Thứ 4 08/01/2025", window.Days[2].Label)
	assert.Equal(t, "Chủ nhật 12/01/2025", window.Days[6].Label)
}

func TestComputeWeekWindowAcrossMonthBoundary(t *testing.T) {
	// Saturday 2025-03-01; its week started Monday 2025-02-24.
	window := ComputeWeekWindow(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), window.StartDate)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), window.EndDate())
}
