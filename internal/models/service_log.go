package models

// ServiceLog records whether an accommodation was provided in a class on a day.
type ServiceLog struct {
	ID              int64  `db:"id" json:"id"`
	ClassID         int64  `db:"class_id" json:"class_id"`
	AccommodationID int64  `db:"accommodation_id" json:"accommodation_id"`
	ServiceDate     string `db:"service_date" json:"service_date"`
	Provided        bool   `db:"provided" json:"provided"`
}
