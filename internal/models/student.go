package models

// PlanType classifies the mandate behind a student's accommodations.
type PlanType string

// Supported plan types.
const (
	PlanType504 PlanType = "504"
	PlanTypeIEP PlanType = "IEP"
)

// Valid reports whether p is a known plan type.
func (p PlanType) Valid() bool {
	return p == PlanType504 || p == PlanTypeIEP
}

// Student represents a learner with a 504 plan or an IEP.
type Student struct {
	ID        int64    `db:"id" json:"id"`
	FirstName string   `db:"first_name" json:"first_name"`
	LastName  string   `db:"last_name" json:"last_name"`
	StudentID string   `db:"student_id" json:"student_id"`
	PlanType  PlanType `db:"plan_type" json:"plan_type"`
}

// StudentWithAccommodations pairs a student with the accommodations they own.
type StudentWithAccommodations struct {
	Student
	Accommodations []Accommodation `json:"accommodations"`
}
