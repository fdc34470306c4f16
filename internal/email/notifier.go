package email

import (
	"sync"

	"destined_affinity/internal/logger"
	"destined_affinity/internal/models"
)

// Notifier отправляет уведомления о решениях асинхронно.
// Ошибка отправки логируется и не влияет на результат операции.
type Notifier struct {
	provider Provider
	renderer TemplateRenderer
	wg       sync.WaitGroup
}

func NewNotifier(provider Provider, renderer TemplateRenderer) *Notifier {
	return &Notifier{provider: provider, renderer: renderer}
}

// AccessDecided - письмо запросившему о решении по запросу доступа
func (n *Notifier) AccessDecided(request *models.AccessRequest) {
	if n == nil {
		return
	}

	tpl, subject := TemplateAccessRejected, "Your contact request was declined"
	if request.Status == models.AccessStatusApproved {
		tpl, subject = TemplateAccessApproved, "Your contact request was approved"
	}

	name := request.RequesterName
	if name == "" {
		name = request.RequesterEmail
	}
	n.dispatch(request.RequesterEmail, subject, tpl, TemplateData{
		"Name":      name,
		"BiodataID": request.BiodataID,
	})
}

// PremiumApproved - письмо участнику, чья анкета стала premium
func (n *Notifier) PremiumApproved(member *models.Member) {
	if n == nil {
		return
	}
	name := member.DisplayName
	if name == "" {
		name = member.Email
	}
	n.dispatch(member.Email, "Your biodata is now premium", TemplatePremiumApproved, TemplateData{
		"Name": name,
	})
}

// Wait дожидается отправки всех писем (graceful shutdown, тесты)
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) dispatch(to, subject, templateName string, data TemplateData) {
	body, err := n.renderer.Render(templateName, data)
	if err != nil {
		logger.Error("failed to render email", "template", templateName, "error", err)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		msg := &Email{To: []string{to}, Subject: subject, HTMLBody: body}
		if err := n.provider.Send(msg); err != nil {
			logger.Error("failed to send email", "to", to, "template", templateName, "error", err)
		}
	}()
}
