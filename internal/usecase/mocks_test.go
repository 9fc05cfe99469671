package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockLeadRepository) MarkContacted(ctx context.Context, id string, status entity.LeadStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *entity.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) Update(ctx context.Context, t *entity.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*entity.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Template), args.Error(1)
}

type MockOfferConfigRepository struct {
	mock.Mock
}

func (m *MockOfferConfigRepository) Get(ctx context.Context) (*entity.OfferConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OfferConfig), args.Error(1)
}

func (m *MockOfferConfigRepository) Upsert(ctx context.Context, cfg *entity.OfferConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

type MockOutreachMessageRepository struct {
	mock.Mock
}

func (m *MockOutreachMessageRepository) Create(ctx context.Context, msg *entity.OutreachMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutreachMessageRepository) ListByLeadID(ctx context.Context, leadID string) ([]*entity.OutreachMessage, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OutreachMessage), args.Error(1)
}

type MockNotificationGateway struct {
	mock.Mock
}

func (m *MockNotificationGateway) Send(ctx context.Context, email entity.OutboundEmail) entity.DeliveryResult {
	return m.Called(ctx, email).Get(0).(entity.DeliveryResult)
}

type MockLeadEventPublisher struct {
	mock.Mock
}

func (m *MockLeadEventPublisher) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func newTestLead(id, firstName, email string, status entity.LeadStatus) *entity.Lead {
	return &entity.Lead{
		ID:          id,
		FirstName:   firstName,
		LastName:    "Doe",
		CompanyName: "Acme",
		Email:       email,
		Location:    "Lisbon",
		Status:      status,
	}
}

func newTestOffer() *entity.OfferConfig {
	return &entity.OfferConfig{
		NicheName:        "dentists",
		ICPDescription:   "clinic owners",
		OfferDescription: "more bookings",
		FromName:         "Bruno",
		FromEmail:        "bruno@outreach.io",
		CalendlyURL:      "https://calendly.com/bruno/intro",
	}
}
