package models

import "time"

// BookingStep is the position within the appointment booking dialogue.
type BookingStep string

const (
	StepIdle      BookingStep = "idle"
	StepOwnerName BookingStep = "ownerName"
	StepPetName   BookingStep = "petName"
	StepPhone     BookingStep = "phone"
	StepDateTime  BookingStep = "dateTime"
	StepConfirm   BookingStep = "confirm"
)

// CollectedData holds the answers gathered so far. A nil field has not been collected yet.
type CollectedData struct {
	OwnerName         *string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	PetName           *string `bson:"petName,omitempty" json:"petName,omitempty"`
	PhoneNumber       *string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	PreferredDateTime *string `bson:"preferredDateTime,omitempty" json:"preferredDateTime,omitempty"` // RFC 3339
}

// BookingState is embedded in a Session and only mutated by the booking machine.
type BookingState struct {
	InProgress    bool          `bson:"inProgress" json:"inProgress"`
	Step          BookingStep   `bson:"step" json:"step"`
	CollectedData CollectedData `bson:"collectedData" json:"collectedData"`
	UpdatedAt     time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IdleBookingState is the resting state of every session.
func IdleBookingState() BookingState {
	return BookingState{Step: StepIdle}
}

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role      MessageRole `bson:"role" json:"role"`
	Content   string      `bson:"content" json:"content"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

// Session is a single conversation between one end user and the assistant.
type Session struct {
	SessionID    string       `bson:"sessionId" json:"sessionId"`
	UserID       string       `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName     string       `bson:"userName,omitempty" json:"userName,omitempty"`
	PetName      string       `bson:"petName,omitempty" json:"petName,omitempty"`
	Source       string       `bson:"source,omitempty" json:"source,omitempty"`
	Messages     []Message    `bson:"messages" json:"messages"`
	BookingState BookingState `bson:"bookingState" json:"bookingState"`
	// Version guards bookingState against concurrent read-modify-write cycles.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
