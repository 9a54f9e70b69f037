package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	kafkaAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/kafka"
	"github.com/pjogani/vedics-api/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleMessageMalformedPayloadIsBusinessError(t *testing.T) {
	h := &ReadingJobsHandler{log: testLogger()}

	err := h.HandleMessage(context.Background(), "key", []byte("not json"))
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if !domain.IsBusinessError(err) {
		t.Errorf("malformed payload should be a business error, got %v", err)
	}
}

func TestHandleMessageInvalidUserID(t *testing.T) {
	h := &ReadingJobsHandler{log: testLogger()}

	value, _ := json.Marshal(kafkaAdapter.ReadingJob{
		Action: kafkaAdapter.ActionGenerateMissing,
		UserID: "not-a-uuid",
	})
	err := h.HandleMessage(context.Background(), "not-a-uuid", value)
	if !domain.IsBusinessError(err) {
		t.Errorf("invalid user_id should be a business error, got %v", err)
	}
}

func TestHandleMessageUnknownAction(t *testing.T) {
	h := &ReadingJobsHandler{log: testLogger()}

	value, _ := json.Marshal(kafkaAdapter.ReadingJob{
		Action: "drop_tables",
		UserID: uuid.NewString(),
	})
	err := h.HandleMessage(context.Background(), "key", value)
	if !domain.IsBusinessError(err) {
		t.Errorf("unknown action should be a business error, got %v", err)
	}
}
