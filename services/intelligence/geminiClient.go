package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient wraps the text and image models.
type GeminiClient struct {
	client     *genai.Client
	textModel  *genai.GenerativeModel
	imageModel *genai.GenerativeModel
}

// NewGeminiClient creates a client for the given models.
func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	text := client.GenerativeModel(textModel)
	text.ResponseMIMEType = "application/json"
	text.SetTemperature(0.4)

	return &GeminiClient{
		client:     client,
		textModel:  text,
		imageModel: client.GenerativeModel(imageModel),
	}, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GenerateJSON returns the concatenated text parts of the first candidate.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// GenerateImage returns the first inline media part, or nil when the model sent none.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (*Media, error) {
	resp, err := g.imageModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini image error: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return &Media{MIMEType: blob.MIMEType, Data: blob.Data}, nil
			}
		}
	}
	return nil, nil
}
