package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	pkghttp "career-coach/pkg/http"
)

const (
	// DefaultEndpoint is the OpenAI chat completions endpoint.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the fixed model used for recommendation generation.
	DefaultModel = "gpt-4o-mini"

	requestTimeout = 120 * time.Second
)

// Generator is the schema-constrained text-generation capability the
// pipeline depends on. The hosted backend is substituted with a stub in
// handler tests.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Service calls the OpenAI chat completions API with a strict json_schema
// response format, so the model either conforms to the contract or fails.
type Service struct {
	apiKey   string
	model    string
	endpoint string
	client   *pkghttp.Client
}

func NewService(apiKey, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		apiKey:   apiKey,
		model:    model,
		endpoint: DefaultEndpoint,
		client:   pkghttp.NewClient(requestTimeout),
	}
}

// Generate performs exactly one completion call: instructions as the system
// message, the JSON-serialized payload as the user message, and the schema
// contract as the structural output constraint. No retries.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal payload")
	}

	body := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.Instructions},
			{"role": "user", "content": string(payload)},
		},
		"temperature": 0.2,
		"response_format": map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   SchemaName,
				"strict": true,
				"schema": req.Schema,
			},
		},
	}

	resp, err := s.client.PostJSON(ctx, s.endpoint, map[string]string{
		"Authorization": "Bearer " + s.apiKey,
	}, body)
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}
	defer resp.Body.Close()

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "failed to decode completion response")
	}

	if result.Error.Message != "" {
		return "", errors.Errorf("completion API error: %s", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("completion API error: status %d", resp.StatusCode)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	return result.Choices[0].Message.Content, nil
}
