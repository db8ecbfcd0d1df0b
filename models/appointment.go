package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Appointment is created once per confirmed booking dialogue.
type Appointment struct {
	ID                string            `bson:"id" json:"id"`
	SessionID         string            `bson:"sessionId" json:"sessionId"`
	OwnerName         string            `bson:"ownerName" json:"ownerName"`
	PetName           string            `bson:"petName" json:"petName"`
	PhoneNumber       string            `bson:"phoneNumber" json:"phoneNumber"`
	PreferredDateTime time.Time         `bson:"preferredDateTime" json:"preferredDateTime"`
	Status            AppointmentStatus `bson:"status" json:"status"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ReminderPayload is the asynq payload for an upcoming appointment reminder.
type ReminderPayload struct {
	AppointmentID     string    `json:"appointmentId"`
	SessionID         string    `json:"sessionId"`
	OwnerName         string    `json:"ownerName"`
	PetName           string    `json:"petName"`
	PhoneNumber       string    `json:"phoneNumber"`
	PreferredDateTime time.Time `json:"preferredDateTime"`
}
