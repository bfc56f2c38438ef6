package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

const occurrenceColumns = "id, day_of_week, shift, time_slot_order, time_slot, class_id, class_name, subject_code, teacher_id, teacher_name, room_id, room_name, type, exception_date, exception_type, exception_reason, request_type_id, exception_status, is_original_schedule, is_moved_schedule, is_standalone_exception, original_day_of_week, original_time_slot, note"

// OccurrenceRepository reads the exception-expanded weekly occurrence sets
// produced by the scheduling backend. The view is keyed by the Monday of the
// week; one query returns the complete replacement set for that week.
type OccurrenceRepository struct {
	db *sqlx.DB
}

// NewOccurrenceRepository creates a new occurrence repository.
func NewOccurrenceRepository(db *sqlx.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

// ListWeek returns every occurrence of the week starting at weekStart,
// narrowed by the optional department/class/teacher filter.
func (r *OccurrenceRepository) ListWeek(ctx context.Context, weekStart time.Time, filter models.WeekFilter) ([]models.ScheduleOccurrence, error) {
	base := "FROM weekly_schedule_occurrences WHERE week_start = $1"
	args := []interface{}{models.Midnight(weekStart)}
	var conditions []string

	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_of_week, time_slot_order, id", occurrenceColumns, base)
	var occurrences []models.ScheduleOccurrence
	if err := r.db.SelectContext(ctx, &occurrences, query, args...); err != nil {
		return nil, fmt.Errorf("list week occurrences: %w", err)
	}
	return occurrences, nil
}
