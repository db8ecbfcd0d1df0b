package models

import "time"

// CreateSessionRequest is the optional widget configuration sent when a chat opens.
type CreateSessionRequest struct {
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	PetName  string `json:"petName,omitempty"`
	Source   string `json:"source,omitempty"`
}

type CreateSessionResponse struct {
	SessionID      string `json:"sessionId"`
	WelcomeMessage string `json:"welcomeMessage"`
}

type SendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type SendMessageResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID string    `json:"sessionId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status"`
}

const (
	TurnUser  = "user"
	TurnModel = "model"
)

// ChatTurn is one role-tagged entry of the history handed to the generative model.
type ChatTurn struct {
	Role string // TurnUser or TurnModel
	Text string
}

// TurnsFromMessages maps stored messages onto model history roles.
func TurnsFromMessages(msgs []Message) []ChatTurn {
	turns := make([]ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		role := TurnModel
		if m.Role == RoleUser {
			role = TurnUser
		}
		turns = append(turns, ChatTurn{Role: role, Text: m.Content})
	}
	return turns
}
