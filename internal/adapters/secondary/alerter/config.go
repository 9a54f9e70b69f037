package alerter

type Config struct {
	WebhookURL string `envconfig:"WEBHOOK_URL"`
	Channel    string `envconfig:"CHANNEL"`
}

// Enabled сообщает, настроена ли отправка алертов
func (c *Config) Enabled() bool {
	return c != nil && c.WebhookURL != ""
}
