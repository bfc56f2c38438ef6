package models

import "time"

// OccurrenceType classifies the kind of meeting an occurrence represents.
type OccurrenceType string

const (
	OccurrenceTheory   OccurrenceType = "theory"
	OccurrencePractice OccurrenceType = "practice"
	OccurrenceExam     OccurrenceType = "exam"
	OccurrenceOnline   OccurrenceType = "online"
)

// Shift is the coarse time partition of a day used as a grid row.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// Shifts lists the grid rows in display order.
var Shifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}

// ShiftLabel returns the Vietnamese row label for a shift.
func ShiftLabel(s Shift) string {
	switch s {
	case ShiftMorning:
		return "Sáng"
	case ShiftAfternoon:
		return "Chiều"
	case ShiftEvening:
		return "Tối"
	}
	return ""
}

// ScheduleOccurrence is one concrete class/exam meeting inside the displayed
// week. Identity is per occurrence, not per recurring series; a re-fetch fully
// replaces the week's occurrence set.
type ScheduleOccurrence struct {
	ID            string         `db:"id" json:"id"`
	DayOfWeek     int            `db:"day_of_week" json:"dayOfWeek"`
	Shift         Shift          `db:"shift" json:"shift"`
	TimeSlotOrder int            `db:"time_slot_order" json:"timeSlotOrder"`
	TimeSlot      string         `db:"time_slot" json:"timeSlot"`
	ClassID       string         `db:"class_id" json:"classId"`
	ClassName     string         `db:"class_name" json:"className"`
	SubjectCode   string         `db:"subject_code" json:"subjectCode"`
	TeacherID     string         `db:"teacher_id" json:"teacherId"`
	TeacherName   string         `db:"teacher_name" json:"teacherName"`
	RoomID        string         `db:"room_id" json:"roomId"`
	RoomName      string         `db:"room_name" json:"roomName"`
	Type          OccurrenceType `db:"type" json:"type"`

	// Exception linkage. All optional; absence means a plain occurrence.
	ExceptionDate   *time.Time `db:"exception_date" json:"exceptionDate,omitempty"`
	ExceptionType   *string    `db:"exception_type" json:"exceptionType,omitempty"`
	ExceptionReason *string    `db:"exception_reason" json:"exceptionReason,omitempty"`
	RequestTypeID   *int       `db:"request_type_id" json:"requestTypeId,omitempty"`
	ExceptionStatus *string    `db:"exception_status" json:"exceptionStatus,omitempty"`

	// Movement linkage.
	IsOriginalSchedule    bool    `db:"is_original_schedule" json:"isOriginalSchedule"`
	IsMovedSchedule       bool    `db:"is_moved_schedule" json:"isMovedSchedule"`
	IsStandaloneException bool    `db:"is_standalone_exception" json:"isStandaloneException"`
	OriginalDayOfWeek     *int    `db:"original_day_of_week" json:"originalDayOfWeek,omitempty"`
	OriginalTimeSlot      *string `db:"original_time_slot" json:"originalTimeSlot,omitempty"`
	Note                  *string `db:"note" json:"note,omitempty"`
}

// HasTemporalFields reports whether the occurrence carries everything needed
// to place it on the grid. Occurrences failing this check are dropped
// individually rather than failing the whole render.
func (o ScheduleOccurrence) HasTemporalFields() bool {
	if !ValidDayOfWeek(o.DayOfWeek) || o.TimeSlotOrder <= 0 {
		return false
	}
	switch o.Shift {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
		return true
	}
	return false
}

// ExceptionTypeCancelled and friends are the exception kinds attached to an
// occurrence by the request workflow.
const (
	ExceptionTypeCancelled  = "cancelled"
	ExceptionTypeExam       = "exam"
	ExceptionTypeMoved      = "moved"
	ExceptionTypeSubstitute = "substitute"
)

// WeekFilter narrows the weekly fetch; all fields optional. It is transient
// view state, never persisted.
type WeekFilter struct {
	DepartmentID string `json:"departmentId,omitempty"`
	ClassID      string `json:"classId,omitempty"`
	TeacherID    string `json:"teacherId,omitempty"`
}

// ScheduleTypeFilter selects which occurrence kinds the grid shows.
type ScheduleTypeFilter string

const (
	TypeFilterAll   ScheduleTypeFilter = "all"
	TypeFilterStudy ScheduleTypeFilter = "study"
	TypeFilterExam  ScheduleTypeFilter = "exam"
)

// Matches applies the type filter to a single occurrence.
func (f ScheduleTypeFilter) Matches(t OccurrenceType) bool {
	switch f {
	case TypeFilterStudy:
		return t == OccurrenceTheory || t == OccurrencePractice
	case TypeFilterExam:
		return t == OccurrenceExam
	default:
		return true
	}
}
