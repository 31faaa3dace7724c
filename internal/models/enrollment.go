package models

// Enrollment links a student to a class. A pair may exist at most once.
type Enrollment struct {
	ID        int64 `db:"id" json:"id"`
	ClassID   int64 `db:"class_id" json:"class_id"`
	StudentID int64 `db:"student_id" json:"student_id"`
}
