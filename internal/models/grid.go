package models

// ClassifiedOccurrence wraps an occurrence with its derived display state.
type ClassifiedOccurrence struct {
	ScheduleOccurrence

	// DisplayStatusID is the resolved requestTypeId, nil for plain occurrences.
	DisplayStatusID *int `json:"displayStatusId,omitempty"`
	// StatusLabel and Color are read from the canonical request-type table
	// when a status is present, otherwise from the base type color.
	StatusLabel string `json:"statusLabel,omitempty"`
	Color       string `json:"color"`
	// Suppressed marks the origin record of a moved meeting; suppressed
	// entries are never rendered as independent cells.
	Suppressed bool `json:"suppressed,omitempty"`
}

// GridCell is one rendered entry inside a (shift, day) bucket.
type GridCell struct {
	Occurrence ClassifiedOccurrence `json:"occurrence"`
	Label      string               `json:"label"`
	Color      string               `json:"color"`
	Moved      bool                 `json:"moved"`
	Note       string               `json:"note,omitempty"`
}

// ShiftRow holds the seven day-buckets of one shift, column 0 = Monday
// through column 6 = Sunday.
type ShiftRow struct {
	Shift Shift                    `json:"shift"`
	Label string                   `json:"label"`
	Days  [GridDayCount][]GridCell `json:"days"`
}

// WeekGrid is the fully projected 3-shift by 7-day matrix for one week.
// Empty buckets are valid and render as empty cells.
type WeekGrid struct {
	Shifts []ShiftRow `json:"shifts"`
}

// CellCount totals the rendered cells across all buckets.
func (g WeekGrid) CellCount() int {
	total := 0
	for _, row := range g.Shifts {
		for _, day := range row.Days {
			total += len(day)
		}
	}
	return total
}

// WeeklySchedule is the full payload served for one displayed week.
type WeeklySchedule struct {
	Window WeekWindow         `json:"window"`
	Grid   WeekGrid           `json:"grid"`
	Filter WeekFilter         `json:"filter"`
	Type   ScheduleTypeFilter `json:"type"`
}
