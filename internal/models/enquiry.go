package models

import "time"

// ContactEnquiry is a contact-form submission about a listing.
// SMSStatus records the outcome of the optional outbound text.
type ContactEnquiry struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PropertyID   int64     `json:"property_id" gorm:"index"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	SMSRequested bool      `json:"sms_requested"`
	SMSStatus    string    `json:"sms_status"`
	Sent         bool      `json:"sent"`
	CreatedAt    time.Time `json:"created_at"`
}
