package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// LeadRepository is the slice of the lead store the outreach core needs.
type LeadRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error)
	FindByEmail(ctx context.Context, email string) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error
	MarkContacted(ctx context.Context, id string, status entity.LeadStatus, at time.Time) error
}

type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Template, error)
}

type OfferConfigRepository interface {
	Get(ctx context.Context) (*entity.OfferConfig, error)
}

type OutreachMessageRepository interface {
	Create(ctx context.Context, msg *entity.OutreachMessage) error
}

// NotificationGateway delivers one email. Implementations never return an
// error value: every failure is reported through DeliveryResult.
type NotificationGateway interface {
	Send(ctx context.Context, email entity.OutboundEmail) entity.DeliveryResult
}

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}
