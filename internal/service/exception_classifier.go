package service

import (
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// Classify derives the display state of a single occurrence. Plain
// occurrences keep their base type color; any present requestTypeId wins over
// it via the canonical lookup table. Cancelled and suspended occurrences stay
// in the output so the user sees why a slot looks empty.
func Classify(occ models.ScheduleOccurrence) models.ClassifiedOccurrence {
	out := models.ClassifiedOccurrence{ScheduleOccurrence: occ}

	if occ.RequestTypeID == nil {
		out.Color = models.TypeColor(occ.Type)
		return out
	}

	rt := models.LookupRequestType(*occ.RequestTypeID)
	id := *occ.RequestTypeID
	out.DisplayStatusID = &id
	out.StatusLabel = rt.Label
	out.Color = rt.Color
	return out
}

// InWeek reports whether the occurrence belongs to the displayed window. An
// occurrence whose exceptionDate falls outside Monday..Sunday is excluded
// even if it otherwise matches; dates compare at midnight granularity.
// Occurrences without an exception date always belong.
func InWeek(occ models.ScheduleOccurrence, window models.WeekWindow) bool {
	if occ.ExceptionDate == nil {
		return true
	}
	return window.Contains(*occ.ExceptionDate)
}

// IsSuspended reports whether the occurrence carries the suspension code.
func IsSuspended(occ models.ScheduleOccurrence) bool {
	return occ.RequestTypeID != nil && *occ.RequestTypeID == models.RequestSuspended
}

// ClassifyWeek classifies the whole fetched set for one window and resolves
// move suppression: when a moved destination is present, its origin record
// must not render as a second active cell. Origins that already carry a
// status (cancelled, suspended, …) stay visible as placeholder markers;
// plain-looking origins are suppressed outright.
func ClassifyWeek(occurrences []models.ScheduleOccurrence, window models.WeekWindow) []models.ClassifiedOccurrence {
	type origin struct {
		day  int
		slot string
	}
	// Only moves landing inside this window may suppress an origin here; a
	// destination in another week leaves this week's meeting untouched.
	moved := make(map[string][]origin)
	for _, occ := range occurrences {
		if !occ.IsMovedSchedule || occ.OriginalDayOfWeek == nil || !InWeek(occ, window) {
			continue
		}
		key := occ.ClassID + "|" + occ.SubjectCode
		o := origin{day: *occ.OriginalDayOfWeek}
		if occ.OriginalTimeSlot != nil {
			o.slot = *occ.OriginalTimeSlot
		}
		moved[key] = append(moved[key], o)
	}

	out := make([]models.ClassifiedOccurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if !InWeek(occ, window) {
			continue
		}
		classified := Classify(occ)
		if !occ.IsMovedSchedule && classified.DisplayStatusID == nil {
			key := occ.ClassID + "|" + occ.SubjectCode
			for _, o := range moved[key] {
				if o.day == occ.DayOfWeek && (o.slot == "" || o.slot == occ.TimeSlot || o.slot == string(occ.Shift)) {
					classified.Suppressed = true
					break
				}
			}
		}
		out = append(out, classified)
	}
	return out
}
