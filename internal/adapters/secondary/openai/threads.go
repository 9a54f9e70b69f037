package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// CreateThread создаёт новый тред ассистента и возвращает его идентификатор
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var resp threadResponse
	if err := c.doJSON(ctx, http.MethodPost, "threads", struct{}{}, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("openai: thread response without id")
	}
	return resp.ID, nil
}

// AddMessage добавляет пользовательское сообщение в тред
func (c *Client) AddMessage(ctx context.Context, threadID, content string) error {
	req := threadMessageRequest{Role: "user", Content: content}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("threads/%s/messages", threadID), req, nil)
}

// CreateRun запускает ассистента в треде
func (c *Client) CreateRun(ctx context.Context, threadID string) (*Run, error) {
	if c.cfg.AssistantID == "" {
		return nil, errors.New("openai: assistant id is not configured")
	}

	req := runRequest{AssistantID: c.cfg.AssistantID}
	var run Run
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("threads/%s/runs", threadID), req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun возвращает текущее состояние run
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("threads/%s/runs/%s", threadID, runID), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestAssistantMessage возвращает текст последнего ответа ассистента в треде
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	var resp messageListResponse
	endpoint := fmt.Sprintf("threads/%s/messages?order=desc&limit=10", threadID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}

	for _, msg := range resp.Data {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Content {
			if part.Type == "text" && part.Text.Value != "" {
				return part.Text.Value, nil
			}
		}
	}

	return "", errors.New("openai: no assistant message in thread")
}
