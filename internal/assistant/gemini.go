package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Generator produces a completion for a prompt with the named model
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

var errEmptyCompletion = errors.New("model returned no content")

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	config *genai.GenerateContentConfig
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini client; every request carries the system instruction
func NewGeminiGenerator(ctx context.Context, apiKey, systemInstruction string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
		},
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), g.config)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errEmptyCompletion
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}
