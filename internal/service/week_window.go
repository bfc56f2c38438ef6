package service

import (
	"time"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// ComputeWeekWindow derives the canonical Monday-start week containing the
// reference date. Pure; any valid time.Time is acceptable input.
func ComputeWeekWindow(reference time.Time) models.WeekWindow {
	day := models.DayOfWeekFromTime(reference.Weekday())
	start := models.Midnight(reference).AddDate(0, 0, -(day - models.DayMonday))

	days := make([]models.WeekDay, 0, models.DaysPerWeek)
	for i := 0; i < models.DaysPerWeek; i++ {
		date := start.AddDate(0, 0, i)
		dow := models.DayMonday + i
		days = append(days, models.WeekDay{
			DayOfWeek: dow,
			Date:      date,
			Label:     models.DayName(dow) + " " + models.FormatDateLabel(date),
		})
	}

	return models.WeekWindow{StartDate: start, Days: days}
}
