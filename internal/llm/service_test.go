package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-coach/internal/normalize"
)

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestGenerateSendsConstrainedRequest(t *testing.T) {
	var captured map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(completionResponse(`{"summary":"ok"}`))
	}))
	defer server.Close()

	svc := NewService("test-key", "")
	svc.endpoint = server.URL

	apps := []normalize.Application{{Company: "Acme", Status: "Submitted", Priority: "High"}}
	raw, err := svc.Generate(context.Background(), NewRequest(nil, apps, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, raw)

	assert.Equal(t, DefaultModel, captured["model"])

	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]interface{})
	user := messages[1].(map[string]interface{})
	assert.Equal(t, "system", system["role"])
	assert.Contains(t, system["content"], "14 days")
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], `"company":"Acme"`)

	format, ok := captured["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	jsonSchema := format["json_schema"].(map[string]interface{})
	assert.Equal(t, SchemaName, jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	assert.NotNil(t, jsonSchema["schema"])
}

func TestGenerateReturnsRawTextUnparsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse("definitely not json"))
	}))
	defer server.Close()

	svc := NewService("k", "")
	svc.endpoint = server.URL

	raw, err := svc.Generate(context.Background(), NewRequest(nil, nil, nil, nil))
	require.NoError(t, err, "the invoker returns raw text; parsing is the validator's job")
	assert.Equal(t, "definitely not json", raw)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "quota exceeded"},
		})
	}))
	defer server.Close()

	svc := NewService("k", "")
	svc.endpoint = server.URL

	_, err := svc.Generate(context.Background(), NewRequest(nil, nil, nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateFailsOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	svc := NewService("k", "")
	svc.endpoint = server.URL

	_, err := svc.Generate(context.Background(), NewRequest(nil, nil, nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	svc := NewService("k", "")
	svc.endpoint = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.Generate(ctx, NewRequest(nil, nil, nil, nil))
	assert.Error(t, err)
}

func TestNewServiceDefaultsModel(t *testing.T) {
	svc := NewService("k", "")
	assert.Equal(t, DefaultModel, svc.model)

	svc = NewService("k", "gpt-4o")
	assert.Equal(t, "gpt-4o", svc.model)
}
