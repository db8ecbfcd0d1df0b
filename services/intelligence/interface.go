package ai

import (
	"context"
	"errors"
	"fmt"

	"vetassist/models"
)

// ErrGenerationFailed is the single error surfaced for any upstream model failure.
var ErrGenerationFailed = errors.New("Failed to generate AI response")

// Generator produces a reply to message given the prior conversation.
type Generator interface {
	Generate(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

// TrimToUserStart drops leading turns until the history opens with a user turn.
func TrimToUserStart(history []models.ChatTurn) []models.ChatTurn {
	for len(history) > 0 && history[0].Role != models.TurnUser {
		history = history[1:]
	}
	return history
}

// UnavailableGenerator fails every call; used when no model is configured.
type UnavailableGenerator struct{}

func (UnavailableGenerator) Generate(context.Context, string, []models.ChatTurn) (string, error) {
	return "", fmt.Errorf("%w: no generative model configured", ErrGenerationFailed)
}
