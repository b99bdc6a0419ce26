package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/revolck-lab/api-advancemais-sub001/pkg/kafka"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/logger"
)

// Kafka topics published by this service.
const (
	TopicUserRegistered      = "advancemais.user.registered"
	TopicCompanyRegistered   = "advancemais.company.registered"
	TopicSubscriptionChanged = "advancemais.subscription.changed"
)

// Event types carried in the envelope.
const (
	TypeUserRegistered      = "user.registered"
	TypeCompanyRegistered   = "company.registered"
	TypeSubscriptionChanged = "subscription.changed"
)

const source = "advancemais-api"

const publishTimeout = 5 * time.Second

// UserRegistered is the payload for user registration events.
type UserRegistered struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleName string `json:"role_name"`
}

// CompanyRegistered is the payload for company registration events.
type CompanyRegistered struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	TradeName string `json:"trade_name"`
}

// SubscriptionChanged is the payload for plan change events.
type SubscriptionChanged struct {
	CompanyID    string `json:"company_id"`
	PlanID       int    `json:"plan_id"`
	DisabledJobs int    `json:"disabled_jobs"`
}

// producer is the subset of the kafka producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Publisher emits domain events to Kafka. Publishing is best effort: a broker
// failure is logged and never propagated to the request that triggered it.
type Publisher struct {
	producer producer
	logger   *slog.Logger
}

// NewPublisher creates a new event publisher. A nil producer disables
// publishing entirely, which keeps local development broker-free.
func NewPublisher(producer producer, log *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

// UserRegistered publishes a user registration event.
func (p *Publisher) UserRegistered(ctx context.Context, payload UserRegistered) {
	p.publish(ctx, TopicUserRegistered, TypeUserRegistered, payload.UserID, "user", payload)
}

// CompanyRegistered publishes a company registration event.
func (p *Publisher) CompanyRegistered(ctx context.Context, payload CompanyRegistered) {
	p.publish(ctx, TopicCompanyRegistered, TypeCompanyRegistered, payload.CompanyID, "company", payload)
}

// SubscriptionChanged publishes a plan change event.
func (p *Publisher) SubscriptionChanged(ctx context.Context, payload SubscriptionChanged) {
	p.publish(ctx, TopicSubscriptionChanged, TypeSubscriptionChanged, payload.CompanyID, "subscription", payload)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, payload any) {
	if p.producer == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	// Detach from the request context so a client disconnect does not drop
	// the event mid-publish.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
