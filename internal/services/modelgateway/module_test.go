package modelgateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pjogani/vedics-api/internal/adapters/secondary/openai"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

func newGateway(t *testing.T, handler http.HandlerFunc) service.IModelGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := openai.NewClient(&openai.Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "gpt-4o",
		AssistantID: "asst_1",
	}, slog.Default())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New(client, slog.Default())
}

func TestCompleteNormalizesResponse(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{'mood': 'calm'}"}}]}`))
	})

	reply := gw.Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "today?"}})
	if reply.Kind != domain.ReplyStructured {
		t.Fatalf("kind = %v, want structured", reply.Kind)
	}
	if !strings.Contains(string(reply.Value), `"mood"`) {
		t.Errorf("value = %s", reply.Value)
	}
}

func TestCompleteUnavailableOnTransportError(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	reply := gw.Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "hi"}})
	if reply.Kind != domain.ReplyUnavailable {
		t.Fatalf("kind = %v, want unavailable", reply.Kind)
	}
	if reply.Reason != ApologyText {
		t.Errorf("reason = %q", reply.Reason)
	}
}

func TestAwaitReplyCompletedRun(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/threads/thread_1/runs":
			w.Write([]byte(`{"id": "run_1", "status": "completed"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/threads/thread_1/messages":
			w.Write([]byte(`{"data": [{"role": "assistant", "content": [{"type": "text", "text": {"value": "{\"answer\": 42}"}}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	reply := gw.AwaitReply(context.Background(), "thread_1")
	if reply.Kind != domain.ReplyStructured {
		t.Fatalf("kind = %v, want structured (reason: %q)", reply.Kind, reply.Reason)
	}
}

func TestAwaitReplyFailedRun(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/threads/thread_1/runs" {
			w.Write([]byte(`{"id": "run_1", "status": "failed"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	reply := gw.AwaitReply(context.Background(), "thread_1")
	if reply.Kind != domain.ReplyUnavailable {
		t.Fatalf("kind = %v, want unavailable", reply.Kind)
	}
}

func TestPostStampsMessage(t *testing.T) {
	var gotContent string
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/threads/thread_1/messages" {
			var body struct {
				Content string `json:"content"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode: %v", err)
			}
			gotContent = body.Content
			w.Write([]byte(`{"id": "msg_1"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if err := gw.Post(context.Background(), "thread_1", "hello"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if !strings.HasSuffix(gotContent, ": hello") {
		t.Errorf("content %q missing timestamp prefix", gotContent)
	}
	if len(gotContent) <= len(": hello") {
		t.Errorf("content %q has no timestamp", gotContent)
	}
}
