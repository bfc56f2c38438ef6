package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// ReferenceRepository loads the dropdown reference lists used by the admin
// filter bar on the weekly view's first load.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new reference repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Departments lists all departments ordered by name.
func (r *ReferenceRepository) Departments(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, name FROM departments ORDER BY name`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// Classes lists all classes ordered by name.
func (r *ReferenceRepository) Classes(ctx context.Context) ([]models.ClassRef, error) {
	const query = `SELECT id, name, department_id FROM classes ORDER BY name`
	var classes []models.ClassRef
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Teachers lists active teachers ordered by name.
func (r *ReferenceRepository) Teachers(ctx context.Context) ([]models.TeacherRef, error) {
	const query = `SELECT id, full_name FROM teachers WHERE active = TRUE ORDER BY full_name`
	var teachers []models.TeacherRef
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}
