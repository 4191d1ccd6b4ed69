package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Completer sends one prompt with one API key and returns the raw model text. Upstream non-2xx
// answers come back as *APIError.
type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

const defaultTemperature = 0.7

// GenAICompleter talks to the Gemini API through the genai SDK.
type GenAICompleter struct {
	Model   string
	BaseURL string
}

func (c GenAICompleter) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.BaseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](defaultTemperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", toAPIError(err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			if txt := candidate.Content.Parts[0].Text; txt != "" {
				return txt, nil
			}
		}
	}
	return "", errors.New("gemini: empty response")
}

func toAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &APIError{StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return err
}
