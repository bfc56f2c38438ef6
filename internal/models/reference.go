package models

// Department is a faculty/department entry for the admin filter dropdowns.
type Department struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ClassRef is a class entry for the admin filter dropdowns.
type ClassRef struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DepartmentID string `db:"department_id" json:"department_id"`
}

// TeacherRef is a teacher entry for the admin filter dropdowns.
type TeacherRef struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
}

// ReferenceBundle groups the dropdown lists fetched once on the admin view's
// first load. Non-admin roles never request it.
type ReferenceBundle struct {
	Departments []Department `json:"departments"`
	Classes     []ClassRef   `json:"classes"`
	Teachers    []TeacherRef `json:"teachers"`
}
