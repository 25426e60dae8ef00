package models

import "time"

// Favorite is a user's saved reference to a listing. At most one
// Favorite exists per PropertyID; ID is assigned by the store.
type Favorite struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	SavedDate  time.Time `json:"saved_date"`
}
