package models

// Accommodation is a single support owned by a student, e.g. "Testing: extended time".
type Accommodation struct {
	ID          int64  `db:"id" json:"id"`
	StudentID   int64  `db:"student_id" json:"student_id"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
}
