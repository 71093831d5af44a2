package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alnah/go-recipefmt/internal/llm"
)

// recordingServer answers every request with status and body and keeps the
// last request for inspection.
type recordingServer struct {
	*httptest.Server
	path    string
	headers http.Header
	body    map[string]any
}

func newRecordingServer(t *testing.T, status int, body string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.path = r.URL.Path
		rs.headers = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &rs.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func testConfig(baseURL string) llm.Config {
	return llm.Config{APIKey: "secret", Model: "test-model", BaseURL: baseURL, Timeout: 5 * time.Second}
}

var testRequest = llm.Request{System: "be terse", User: "hello", JSON: true}

// ---------------------------------------------------------------------------
// TestOpenRouter_Complete - resty chat completions
// ---------------------------------------------------------------------------

func TestOpenRouter_Complete(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"{\"a\":1}"}}]}`)
	got, err := llm.NewOpenRouter(testConfig(srv.URL)).Complete(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("Complete() = %q", got)
	}
	if srv.path != "/chat/completions" {
		t.Errorf("path = %q", srv.path)
	}
	if srv.headers.Get("Authorization") != "Bearer secret" {
		t.Errorf("Authorization = %q", srv.headers.Get("Authorization"))
	}
	if srv.body["model"] != "test-model" {
		t.Errorf("model = %v", srv.body["model"])
	}
	if rf, _ := srv.body["response_format"].(map[string]any); rf["type"] != "json_object" {
		t.Errorf("response_format = %v", srv.body["response_format"])
	}
	if msgs, _ := srv.body["messages"].([]any); len(msgs) != 2 {
		t.Errorf("messages = %v", srv.body["messages"])
	}
}

func TestOpenRouter_Complete_ModelOverride(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{"choices":[{"message":{"content":"x"}}]}`)
	req := testRequest
	req.Model = "other/model"
	if _, err := llm.NewOpenRouter(testConfig(srv.URL)).Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if srv.body["model"] != "other/model" {
		t.Errorf("model = %v, want override", srv.body["model"])
	}
}

func TestOpenRouter_Complete_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: llm.ErrRequest},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: llm.ErrEmptyResponse},
		{name: "garbage", status: http.StatusOK, body: `<html>`, wantErr: llm.ErrRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newRecordingServer(t, tt.status, tt.body)
			_, err := llm.NewOpenRouter(testConfig(srv.URL)).Complete(context.Background(), testRequest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Complete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAnthropic_Complete - resty messages API
// ---------------------------------------------------------------------------

func TestAnthropic_Complete(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK,
		`{"content":[{"type":"text","text":"{\"a\":"},{"type":"text","text":"1}"}],"stop_reason":"end_turn"}`)
	got, err := llm.NewAnthropic(testConfig(srv.URL)).Complete(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("Complete() = %q", got)
	}
	if srv.path != "/v1/messages" {
		t.Errorf("path = %q", srv.path)
	}
	if srv.headers.Get("x-api-key") != "secret" || srv.headers.Get("anthropic-version") == "" {
		t.Errorf("headers = %v", srv.headers)
	}
	if srv.body["system"] != "be terse" {
		t.Errorf("system = %v", srv.body["system"])
	}
}

func TestAnthropic_Complete_HTTPError(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	_, err := llm.NewAnthropic(testConfig(srv.URL)).Complete(context.Background(), testRequest)
	if !errors.Is(err, llm.ErrRequest) {
		t.Errorf("Complete() error = %v, want ErrRequest", err)
	}
}

// ---------------------------------------------------------------------------
// TestOpenAI_Complete - official SDK
// ---------------------------------------------------------------------------

func TestOpenAI_Complete(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "test-model",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"a\":1}"}}]
}`)
	got, err := llm.NewOpenAI(testConfig(srv.URL+"/")).Complete(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("Complete() = %q", got)
	}
	if srv.path != "/chat/completions" {
		t.Errorf("path = %q", srv.path)
	}
	if rf, _ := srv.body["response_format"].(map[string]any); rf["type"] != "json_object" {
		t.Errorf("response_format = %v", srv.body["response_format"])
	}
}

func TestOpenAI_Complete_HTTPError(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusBadRequest, `{"error":{"message":"bad","type":"invalid_request_error"}}`)
	_, err := llm.NewOpenAI(testConfig(srv.URL+"/")).Complete(context.Background(), testRequest)
	if !errors.Is(err, llm.ErrRequest) {
		t.Errorf("Complete() error = %v, want ErrRequest", err)
	}
}
