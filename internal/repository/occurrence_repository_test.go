package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var occurrenceTestColumns = []string{
	"id", "day_of_week", "shift", "time_slot_order", "time_slot",
	"class_id", "class_name", "subject_code", "teacher_id", "teacher_name",
	"room_id", "room_name", "type",
	"exception_date", "exception_type", "exception_reason", "request_type_id", "exception_status",
	"is_original_schedule", "is_moved_schedule", "is_standalone_exception",
	"original_day_of_week", "original_time_slot", "note",
}

func occurrenceRow(rows *sqlmock.Rows, id string, day int) *sqlmock.Rows {
	return rows.AddRow(
		id, day, "morning", 1, "1-3",
		"DHKTPM17A", "DHKTPM17A", "IT4409", "gv01", "Nguyễn Văn An",
		"r1", "H9.01", "theory",
		nil, nil, nil, nil, nil,
		true, false, false,
		nil, nil, nil,
	)
}

func TestOccurrenceRepositoryListWeek(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOccurrenceRepository(db)

	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	rows := occurrenceRow(sqlmock.NewRows(occurrenceTestColumns), "occ-1", 2)
	rows = occurrenceRow(rows, "occ-2", 4)

	mock.ExpectQuery(regexp.QuoteMeta("FROM weekly_schedule_occurrences WHERE week_start = $1 ORDER BY day_of_week, time_slot_order, id")).
		WithArgs(weekStart).
		WillReturnRows(rows)

	occurrences, err := repo.ListWeek(context.Background(), weekStart, models.WeekFilter{})
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, "occ-1", occurrences[0].ID)
	assert.Equal(t, 2, occurrences[0].DayOfWeek)
	assert.Equal(t, models.ShiftMorning, occurrences[0].Shift)
	assert.Nil(t, occurrences[0].RequestTypeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccurrenceRepositoryListWeekNormalizesStart(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOccurrenceRepository(db)

	// A reference carrying time-of-day queries the midnight week key.
	weekStart := time.Date(2025, 1, 6, 15, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM weekly_schedule_occurrences WHERE week_start = ").
		WithArgs(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(occurrenceTestColumns))

	occurrences, err := repo.ListWeek(context.Background(), weekStart, models.WeekFilter{})
	require.NoError(t, err)
	assert.Empty(t, occurrences)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccurrenceRepositoryListWeekWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOccurrenceRepository(db)

	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE week_start = $1 AND department_id = $2 AND class_id = $3 AND teacher_id = $4")).
		WithArgs(weekStart, "cntt", "DHKTPM17A", "gv01").
		WillReturnRows(occurrenceRow(sqlmock.NewRows(occurrenceTestColumns), "occ-1", 2))

	filter := models.WeekFilter{DepartmentID: "cntt", ClassID: "DHKTPM17A", TeacherID: "gv01"}
	occurrences, err := repo.ListWeek(context.Background(), weekStart, filter)
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccurrenceRepositoryListWeekQueryError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOccurrenceRepository(db)

	mock.ExpectQuery("FROM weekly_schedule_occurrences").
		WillReturnError(assert.AnError)

	_, err := repo.ListWeek(context.Background(), time.Now(), models.WeekFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list week occurrences")
}
