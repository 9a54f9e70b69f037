package openai

// Message сообщение в формате chat completions
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest тело запроса POST /chat/completions
type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// chatCompletionResponse ответ chat completions
type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// threadResponse ответ POST /threads
type threadResponse struct {
	ID string `json:"id"`
}

// threadMessageRequest тело запроса POST /threads/{id}/messages
type threadMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// runRequest тело запроса POST /threads/{id}/runs
type runRequest struct {
	AssistantID string `json:"assistant_id"`
}

// Run состояние запуска ассистента
type Run struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Терминальные статусы run
const (
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
	RunStatusCancelled  = "cancelled"
	RunStatusExpired    = "expired"
	RunStatusIncomplete = "incomplete"
)

// IsTerminal сообщает, что run больше не изменит статус
func (r *Run) IsTerminal() bool {
	switch r.Status {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete:
		return true
	}
	return false
}

// messageListResponse ответ GET /threads/{id}/messages
type messageListResponse struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

// apiError тело ошибки OpenAI API
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
