package email

import (
	"strings"

	"destined_affinity/internal/logger"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(email *Email) error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// LogProvider пишет письма в лог вместо отправки (dev, тесты)
type LogProvider struct{}

func (LogProvider) Send(email *Email) error {
	logger.Info("email (log provider)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}
