package service

import (
	"sort"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// ProjectGrid buckets classified occurrences into the 3-shift by 7-day
// matrix. Type filtering happens before bucketing; suppressed move origins
// and occurrences missing temporal fields are dropped individually. Pure and
// deterministic: within a bucket, cells sort by timeSlotOrder, ties broken
// by id.
func ProjectGrid(occurrences []models.ClassifiedOccurrence, typeFilter models.ScheduleTypeFilter) models.WeekGrid {
	rows := make([]models.ShiftRow, len(models.Shifts))
	rowIndex := make(map[models.Shift]int, len(models.Shifts))
	for i, shift := range models.Shifts {
		rows[i] = models.ShiftRow{Shift: shift, Label: models.ShiftLabel(shift)}
		rowIndex[shift] = i
	}

	for _, occ := range occurrences {
		if !typeFilter.Matches(occ.Type) {
			continue
		}
		if occ.Suppressed {
			continue
		}
		if !occ.HasTemporalFields() {
			continue
		}
		row, ok := rowIndex[occ.Shift]
		if !ok {
			continue
		}
		col := models.DayColumn(occ.DayOfWeek)
		if col < 0 {
			continue
		}
		rows[row].Days[col] = append(rows[row].Days[col], newCell(occ))
	}

	for i := range rows {
		for d := range rows[i].Days {
			cells := rows[i].Days[d]
			sort.SliceStable(cells, func(a, b int) bool {
				if cells[a].Occurrence.TimeSlotOrder != cells[b].Occurrence.TimeSlotOrder {
					return cells[a].Occurrence.TimeSlotOrder < cells[b].Occurrence.TimeSlotOrder
				}
				return cells[a].Occurrence.ID < cells[b].Occurrence.ID
			})
		}
	}

	return models.WeekGrid{Shifts: rows}
}

func newCell(occ models.ClassifiedOccurrence) models.GridCell {
	cell := models.GridCell{
		Occurrence: occ,
		Label:      occ.StatusLabel,
		Color:      occ.Color,
		Moved:      occ.IsMovedSchedule,
	}
	if occ.IsMovedSchedule && occ.Note != nil {
		cell.Note = *occ.Note
	}
	return cell
}
