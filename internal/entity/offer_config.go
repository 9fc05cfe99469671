package entity

import (
	"context"
	"time"
)

// OfferConfig describes the sender and the offer used to personalize every
// outgoing email. Exactly zero or one row exists.
type OfferConfig struct {
	NicheName        string    `json:"nicheName"`
	ICPDescription   string    `json:"icpDescription"`
	OfferDescription string    `json:"offerDescription"`
	FromName         string    `json:"fromName"`
	FromEmail        string    `json:"fromEmail"`
	CalendlyURL      string    `json:"calendlyUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type OfferConfigRepositoryInterface interface {
	Get(ctx context.Context) (*OfferConfig, error)
	Upsert(ctx context.Context, cfg *OfferConfig) error
}
