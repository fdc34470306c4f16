package events

import (
	"context"
	"time"
)

// Типы событий аудита
const (
	MemberCreated          = "member.created"
	MemberRoleChanged      = "member.role_changed"
	MemberPremiumChanged   = "member.premium_changed"
	BiodataCreated         = "biodata.created"
	AccessRequestCreated   = "access_request.created"
	AccessRequestDecided   = "access_request.decided"
	AccessRequestDeleted   = "access_request.deleted"
	PaymentRecorded        = "payment.recorded"
	MarriageRecordUpserted = "marriage.upserted"
)

// Event - запись аудита: кто (Actor) что сделал с чем (Subject)
type Event struct {
	Type    string
	Actor   string
	Subject string
	Payload map[string]interface{}
	At      time.Time
}

// Publisher публикует события аудита
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher - когда Redis не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NoopPublisher) Close() error                                   { return nil }
