package openai

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "gpt-4o",
		AssistantID: "asst_123",
	}, slog.Default())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(&Config{}, slog.Default()); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestCreateChatCompletion(t *testing.T) {
	var gotAuth, gotBeta string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBeta = r.Header.Get("OpenAI-Beta")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "hello"}}]}`))
	})

	text, err := client.CreateChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("CreateChatCompletion: %v", err)
	}
	if text != "hello" {
		t.Errorf("text = %q, want %q", text, "hello")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBeta != "assistants=v2" {
		t.Errorf("OpenAI-Beta = %q", gotBeta)
	}
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit", "type": "rate_limit_error"}}`))
	})

	_, err := client.CreateChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestThreadLifecycle(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/threads":
			w.Write([]byte(`{"id": "thread_1"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/threads/thread_1/messages":
			w.Write([]byte(`{"id": "msg_1"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/threads/thread_1/runs":
			w.Write([]byte(`{"id": "run_1", "status": "queued"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/threads/thread_1/runs/run_1":
			w.Write([]byte(`{"id": "run_1", "status": "completed"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/threads/thread_1/messages":
			w.Write([]byte(`{"data": [{"role": "assistant", "content": [{"type": "text", "text": {"value": "reading text"}}]}]}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	threadID, err := client.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread: %v", err)
	}
	if threadID != "thread_1" {
		t.Fatalf("threadID = %q", threadID)
	}

	if err := client.AddMessage(ctx, threadID, "tell me"); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	run, err := client.CreateRun(ctx, threadID)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.IsTerminal() {
		t.Errorf("queued run reported terminal")
	}

	run, err = client.GetRun(ctx, threadID, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !run.IsTerminal() || run.Status != RunStatusCompleted {
		t.Errorf("unexpected run state %+v", run)
	}

	text, err := client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		t.Fatalf("LatestAssistantMessage: %v", err)
	}
	if text != "reading text" {
		t.Errorf("text = %q", text)
	}
}
