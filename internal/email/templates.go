package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateAccessApproved  = "access_approved"
	TemplateAccessRejected  = "access_rejected"
	TemplatePremiumApproved = "premium_approved"
)

var builtinTemplates = map[string]string{
	TemplateAccessApproved: `<p>Hello {{.Name}},</p>
<p>Your request to view the contact details of biodata #{{.BiodataID}} has been approved.</p>
<p>You can now see them on the biodata page.</p>`,
	TemplateAccessRejected: `<p>Hello {{.Name}},</p>
<p>Your request to view the contact details of biodata #{{.BiodataID}} was not approved.</p>`,
	TemplatePremiumApproved: `<p>Hello {{.Name}},</p>
<p>Your biodata is now premium.</p>`,
}

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами уведомлений
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// встроенные шаблоны валидны, ошибка здесь - ошибка разработки
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
