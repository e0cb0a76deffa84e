package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"collabflow/internal/logging"
)

// Candidate is one collaboration inquiry as returned by the model,
// before defaulting and ID assignment.
type Candidate struct {
	BrandName   string `json:"brandName"`
	Email       string `json:"email"`
	RequestDate string `json:"requestDate"`
	Summary     string `json:"summary"`
	Budget      string `json:"budget"`
}

// Gateway extracts collaboration inquiries from raw pasted text or
// combined email files using the Gemini API.
type Gateway struct {
	client *genai.Client
	model  string
}

// NewGateway creates a new extraction gateway.
func NewGateway(apiKey, model string) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gateway{
		client: client,
		model:  model,
	}, nil
}

// candidateSchema constrains the response to a JSON array of inquiry
// objects. Only brandName and summary are required; the rest may be
// absent when the source text does not contain them.
func candidateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"brandName":   {Type: genai.TypeString},
				"email":       {Type: genai.TypeString},
				"requestDate": {Type: genai.TypeString},
				"summary":     {Type: genai.TypeString},
				"budget":      {Type: genai.TypeString},
			},
			Required: []string{"brandName", "summary"},
		},
	}
}

// Parse sends the input text to the model and returns the extracted
// candidates. selfEmail, when non-empty, tells the model to skip mail
// sent by the user themselves (outbox backups).
func (g *Gateway) Parse(ctx context.Context, text, selfEmail string) ([]Candidate, error) {
	startTime := time.Now()
	logging.ExtractDebug("[Gateway] Parse: model=%s input_len=%d self_email=%t", g.model, len(text), selfEmail != "")

	prompt := buildPrompt(text, selfEmail)

	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   candidateSchema(),
		},
	)
	if err != nil {
		logging.ExtractError("[Gateway] Parse: request failed after %v: %v", time.Since(startTime), err)
		return nil, fmt.Errorf("Gemini extraction failed: %w", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		logging.Extract("[Gateway] Parse: empty response in %v", time.Since(startTime))
		return nil, nil
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		logging.ExtractError("[Gateway] Parse: malformed response: %v", err)
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	logging.Extract("[Gateway] Parse: completed in %v candidates=%d", time.Since(startTime), len(candidates))
	return candidates, nil
}

// Close closes the underlying Gemini client.
func (g *Gateway) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
