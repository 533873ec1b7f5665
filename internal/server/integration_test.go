//go:build integration
// +build integration

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a live API with the sample migrations applied:
//
//	INTEGRATION_BASE_URL=http://localhost:8080 go test -tags integration ./internal/server/...

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func doJSON(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, baseURL()+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestIntegrationHealthz(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestIntegrationQuestionLifecycle(t *testing.T) {
	text := fmt.Sprintf("Integration question %d?", time.Now().UnixNano())

	status, created := doJSON(t, http.MethodPost, "/questions", map[string]interface{}{
		"question": text, "answer": "yes", "category": "1", "difficulty": 2,
	})
	require.Equal(t, http.StatusOK, status)
	id := int64(created["created"].(float64))

	status, found := doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": text})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), found["totalQuestions"])

	status, deleted := doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(id), deleted["deleted"])

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestIntegrationQuizExhaustsCategory(t *testing.T) {
	var previous []float64
	for i := 0; i < 100; i++ {
		status, body := doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 1, "type": "Science"},
		})
		require.Equal(t, http.StatusOK, status)
		if body["question"] == nil {
			return
		}
		q := body["question"].(map[string]interface{})
		assert.Equal(t, float64(1), q["category"])
		assert.NotContains(t, previous, q["id"])
		previous = append(previous, q["id"].(float64))
	}
	t.Fatal("quiz never reported an exhausted category")
}

func TestIntegrationUnknownRoute(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resource Not found", body["message"])
}
