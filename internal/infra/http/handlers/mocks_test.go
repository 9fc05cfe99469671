package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *mockLeadRepo) Upsert(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockLeadRepo) MarkContacted(ctx context.Context, id string, status entity.LeadStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

type mockOfferRepo struct {
	mock.Mock
}

func (m *mockOfferRepo) Get(ctx context.Context) (*entity.OfferConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OfferConfig), args.Error(1)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *entity.OutreachMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Send(ctx context.Context, email entity.OutboundEmail) entity.DeliveryResult {
	return m.Called(ctx, email).Get(0).(entity.DeliveryResult)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockOfferRepo) Upsert(ctx context.Context, cfg *entity.OfferConfig) error {
	return m.Called(ctx, cfg).Error(0)
}
