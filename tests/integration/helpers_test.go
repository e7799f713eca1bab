//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// editorToken is minted by cmd/tokengen when the server runs with EDITOR_TOKEN_SECRET.
func editorToken() string {
	return os.Getenv("INTEGRATION_EDITOR_TOKEN")
}

// doJSON sends payload (if any) and decodes the JSON response body.
func doJSON(t *testing.T, method, url, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func createQuestion(t *testing.T, baseURL string, payload map[string]interface{}) int {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/questions", editorToken(), payload)
	if status != http.StatusOK {
		t.Fatalf("create question: expected 200, got %d: %v", status, body)
	}
	created, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing created id in %v", body)
	}
	return int(created)
}
