package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с OpenAI API (chat completions и assistants v2)
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент OpenAI
func NewClient(cfg *Config, log *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		Log: log,
	}, nil
}

// Model возвращает имя модели из конфигурации
func (c *Client) Model() string {
	return c.cfg.Model
}

// AssistantID возвращает идентификатор ассистента из конфигурации
func (c *Client) AssistantID() string {
	return c.cfg.AssistantID
}

// buildURL собирает полный URL из BaseURL и endpoint
func (c *Client) buildURL(endpoint string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

// setHeaders устанавливает стандартные заголовки для запросов к API
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
}

// doJSON выполняет запрос и декодирует JSON-ответ в out
func (c *Client) doJSON(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	url := c.buildURL(endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Log.Debug("openai returned non-2xx status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(respBody), 200),
		)

		var ae apiError
		if json.Unmarshal(respBody, &ae) == nil && ae.Error.Message != "" {
			return fmt.Errorf("openai error [status=%d]: %s", resp.StatusCode, ae.Error.Message)
		}
		return fmt.Errorf("openai error [status=%d]: %s", resp.StatusCode, truncateString(string(respBody), 500))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.Log.Debug("failed to unmarshal openai response",
				"endpoint", endpoint,
				"error", err,
				"body_preview", truncateString(string(respBody), 200),
			)
			return fmt.Errorf("openai unmarshal failed [status=%d]: %w", resp.StatusCode, err)
		}
	}

	return nil
}

// CreateChatCompletion выполняет одиночный запрос к chat completions
// и возвращает текст первого варианта ответа
func (c *Client) CreateChatCompletion(ctx context.Context, messages []Message) (string, error) {
	req := chatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: messages,
	}

	var resp chatCompletionResponse
	if err := c.doJSON(ctx, http.MethodPost, "chat/completions", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices in completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
