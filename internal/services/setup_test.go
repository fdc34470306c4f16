package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/email"
	"destined_affinity/internal/events"
	"destined_affinity/internal/metrics"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/internal/services"
	"destined_affinity/test/helpers"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingProvider struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (p *recordingProvider) Send(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return nil
}

type fixture struct {
	db        *gorm.DB
	svc       *services.ServiceContainer
	publisher *recordingPublisher
	mail      *recordingProvider
	notifier  *email.Notifier
	metrics   *metrics.Metrics
}

// fixedNow - часы побочных эффектов в тестах сервисов
var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDB(t, helpers.NewTestDB(t))
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	publisher := &recordingPublisher{}
	mail := &recordingProvider{}
	notifier := email.NewNotifier(mail, email.NewTemplateManager())
	m := metrics.New()
	effects := &services.Effects{
		Publisher: publisher,
		Metrics:   m,
		Notifier:  notifier,
		Now:       func() time.Time { return fixedNow },
	}

	memberRepo := repositories.NewMemberRepository()
	biodataRepo := repositories.NewBiodataRepository()
	accessRepo := repositories.NewAccessRequestRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	marriageRepo := repositories.NewMarriageRepository()
	paymentRepo := repositories.NewPaymentRepository()
	guard := auth.NewGuard(memberRepo)

	memberService := services.NewMemberService(memberRepo, guard, effects)
	accessService := services.NewAccessRequestService(accessRepo, biodataRepo, memberRepo, guard, effects)

	return &fixture{
		db: db,
		svc: &services.ServiceContainer{
			MemberService:        memberService,
			BiodataService:       services.NewBiodataService(biodataRepo, accessRepo, guard, effects),
			AccessRequestService: accessService,
			FavoriteService:      services.NewFavoriteService(favoriteRepo, biodataRepo, guard),
			MarriageService:      services.NewMarriageService(marriageRepo, biodataRepo, effects),
			PaymentService:       services.NewPaymentService(paymentRepo, accessService, memberService, effects),
			StatsService:         services.NewStatsService(biodataRepo, marriageRepo, memberRepo, accessRepo, paymentRepo, guard),
		},
		publisher: publisher,
		mail:      mail,
		notifier:  notifier,
		metrics:   m,
	}
}

func identity(email string) *auth.Identity {
	return &auth.Identity{Email: email, Role: models.MemberRoleMember}
}

func ptr[T any](v T) *T {
	return &v
}
