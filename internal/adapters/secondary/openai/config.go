package openai

import "errors"

type Config struct {
	APIKey      string `envconfig:"API_KEY"`
	BaseURL     string `envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	Model       string `envconfig:"MODEL" default:"gpt-4o"`
	AssistantID string `envconfig:"ASSISTANT_ID"`
}

// Validate проверяет обязательные поля; без ключа клиент бесполезен
func (c *Config) Validate() error {
	if c == nil || c.APIKey == "" {
		return errors.New("openai: API key is required")
	}
	return nil
}

// HasAssistant сообщает, настроен ли режим ассистента с тредами
func (c *Config) HasAssistant() bool {
	return c.AssistantID != ""
}
