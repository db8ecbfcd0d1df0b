// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetassist/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var tracer = otel.Tracer("vetassist/intelligence")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewGeminiClient connects to the Gemini API and configures modelID with the
// veterinary system instruction.
func NewGeminiClient(ctx context.Context, apiKey, modelID string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	model := client.GenerativeModel(modelID)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(veterinarySystemPrompt)}}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generate sends message in a chat seeded with history.
func (g *GeminiClient) Generate(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	ctx, span := tracer.Start(ctx, "gemini.generate")
	defer span.End()

	history = TrimToUserStart(history)
	span.SetAttributes(attribute.Int("history.turns", len(history)))

	cs := g.model.StartChat()
	cs.History = toContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		span.RecordError(err)
		g.logger.Error("Gemini API error", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		g.logger.Error("Gemini returned no usable content", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return text, nil
}

func toContents(history []models.ChatTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return contents
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("response has no text parts")
	}
	return sb.String(), nil
}
