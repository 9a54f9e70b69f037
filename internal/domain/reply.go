package domain

import "encoding/json"

// ChatMessage сообщение для completion-эндпоинта модели
type ChatMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// ReplyKind вид ответа модели после нормализации
type ReplyKind int

const (
	ReplyStructured  ReplyKind = iota + 1 // валидный JSON
	ReplyRaw                              // текст, не разобравшийся в JSON
	ReplyUnavailable                      // бэкенд модели недоступен
)

// ModelReply размеченный результат обращения к модели. Вызывающий код
// проверяет Kind вместо проверки формы значения. Ошибки транспорта на границе
// шлюза превращаются в ReplyUnavailable, не в error.
type ModelReply struct {
	Kind   ReplyKind
	Value  json.RawMessage // заполнено при ReplyStructured
	Text   string          // заполнено при ReplyRaw
	Reason string          // заполнено при ReplyUnavailable
}

// StructuredReply ответ с валидным JSON
func StructuredReply(v json.RawMessage) ModelReply {
	return ModelReply{Kind: ReplyStructured, Value: v}
}

// RawReply ответ с неразобранным текстом
func RawReply(text string) ModelReply {
	return ModelReply{Kind: ReplyRaw, Text: text}
}

// UnavailableReply бэкенд модели недоступен (сеть, авторизация, квота)
func UnavailableReply(reason string) ModelReply {
	return ModelReply{Kind: ReplyUnavailable, Reason: reason}
}

// Content возвращает форму для сохранения: структурированное значение как есть,
// всё остальное обёрнуто в {"raw": "<текст>"}
func (r ModelReply) Content() json.RawMessage {
	switch r.Kind {
	case ReplyStructured:
		return r.Value
	case ReplyRaw:
		return wrapRaw(r.Text)
	default:
		return wrapRaw(r.Reason)
	}
}

func wrapRaw(text string) json.RawMessage {
	data, err := json.Marshal(map[string]string{"raw": text})
	if err != nil {
		// map[string]string сериализуется всегда
		return json.RawMessage(`{"raw": ""}`)
	}
	return data
}
