package models

// Class represents a taught section, e.g. "Algebra I, period 3".
type Class struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Subject string `db:"subject" json:"subject"`
	Period  string `db:"period" json:"period"`
	Year    string `db:"year" json:"year"`
}

// ClassSummary is a class roster with every enrolled student's accommodations.
type ClassSummary struct {
	Class
	Students []StudentWithAccommodations `json:"students"`
}
