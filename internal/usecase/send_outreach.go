package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const errTemplateMissingContent = "template missing subject or body"

type SendOutreachUseCase struct {
	LeadRepo     LeadRepository
	TemplateRepo TemplateRepository
	OfferRepo    OfferConfigRepository
	MessageRepo  OutreachMessageRepository
	Gateway      NotificationGateway
	Events       LeadEventPublisher
	Logger       *zap.Logger

	// Concurrency bounds parallel per-lead sends. Values below 2 keep the
	// loop sequential.
	Concurrency int

	now func() time.Time
}

func NewSendOutreachUseCase(
	leadRepo LeadRepository,
	templateRepo TemplateRepository,
	offerRepo OfferConfigRepository,
	messageRepo OutreachMessageRepository,
	gateway NotificationGateway,
	events LeadEventPublisher,
	logger *zap.Logger,
	concurrency int,
) *SendOutreachUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendOutreachUseCase{
		LeadRepo:     leadRepo,
		TemplateRepo: templateRepo,
		OfferRepo:    offerRepo,
		MessageRepo:  messageRepo,
		Gateway:      gateway,
		Events:       events,
		Logger:       logger,
		Concurrency:  concurrency,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (uc *SendOutreachUseCase) WithClock(now func() time.Time) *SendOutreachUseCase {
	uc.now = now
	return uc
}

// batchResult accumulates per-lead outcomes. Safe for concurrent use.
type batchResult struct {
	mu     sync.Mutex
	sent   int
	failed int
	errors []string
}

func (r *batchResult) success() {
	r.mu.Lock()
	r.sent++
	r.mu.Unlock()
}

func (r *batchResult) failure(email, reason string) {
	r.mu.Lock()
	r.failed++
	r.errors = append(r.errors, fmt.Sprintf("%s: %s", email, reason))
	r.mu.Unlock()
}

func (r *batchResult) output() *SendOutreachOutput {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := make([]string, len(r.errors))
	copy(errs, r.errors)
	return &SendOutreachOutput{Sent: r.sent, Failed: r.failed, Errors: errs}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, input SendOutreachInput) (*SendOutreachOutput, error) {
	ids := uniqueIDs(input.LeadIDs)
	if len(ids) == 0 {
		return nil, validationFailed("lead IDs are required", ValidationError{"leadIds", "is required"})
	}
	templateID := strings.TrimSpace(input.TemplateID)
	if templateID == "" {
		return nil, validationFailed("template ID is required", ValidationError{"templateId", "is required"})
	}

	template, err := uc.TemplateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return nil, &DomainError{Code: CodeTemplateNotFound, Message: "template not found"}
		}
		return nil, databaseError("failed to load template", err)
	}

	offer, err := uc.OfferRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrOfferConfigNotFound) {
			return nil, &DomainError{Code: CodeOfferConfigNotFound, Message: "offer config not found"}
		}
		return nil, databaseError("failed to load offer config", err)
	}

	leads, err := uc.LeadRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, databaseError("failed to load leads", err)
	}
	ordered := orderLeads(ids, leads)
	if missing := len(ids) - len(ordered); missing > 0 {
		uc.Logger.Warn("outreach batch references unknown leads", zap.Int("missing", missing))
	}

	uc.Logger.Info("outreach batch started",
		zap.String("template_id", template.ID),
		zap.Int("leads", len(ordered)),
	)

	// leads already processed keep their side effects if the caller goes away
	work := context.WithoutCancel(ctx)
	result := &batchResult{errors: []string{}}

	if uc.Concurrency < 2 {
		for _, lead := range ordered {
			uc.processLead(work, lead, template, offer, result)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(uc.Concurrency)
		for _, lead := range ordered {
			lead := lead
			g.Go(func() error {
				uc.processLead(work, lead, template, offer, result)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := result.output()
	uc.Logger.Info("outreach batch finished",
		zap.String("template_id", template.ID),
		zap.Int("sent", out.Sent),
		zap.Int("failed", out.Failed),
	)
	return out, nil
}

// processLead never lets a failure escape: everything is folded into result.
func (uc *SendOutreachUseCase) processLead(
	ctx context.Context,
	lead *entity.Lead,
	template *entity.Template,
	offer *entity.OfferConfig,
	result *batchResult,
) {
	defer func() {
		if r := recover(); r != nil {
			uc.Logger.Error("outreach panic for lead", zap.String("lead_id", lead.ID), zap.Any("panic", r))
			result.failure(lead.Email, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	log := uc.Logger.With(zap.String("lead_id", lead.ID))

	vars := BuildTemplateVariables(lead, offer)
	subjectSrc, _ := NormalizeVariableSyntax(template.Subject)
	bodySrc, _ := NormalizeVariableSyntax(template.Body)
	subject := RenderTemplate(subjectSrc, vars)
	body := RenderTemplate(bodySrc, vars)

	if subject == "" || body == "" {
		result.failure(lead.Email, errTemplateMissingContent)
		return
	}

	var delivery entity.DeliveryResult
	if strings.TrimSpace(lead.Email) == "" {
		delivery = entity.DeliveryFailed("lead email is required")
	} else {
		delivery = uc.Gateway.Send(ctx, entity.OutboundEmail{
			ToEmail:   lead.Email,
			FromName:  offer.FromName,
			FromEmail: offer.FromEmail,
			Subject:   subject,
			HTMLBody:  textToHTML(body),
		})
	}

	sentAt := uc.now()
	msg := entity.NewOutreachMessage(lead.ID, template.ID, subject, body, sentAt, delivery)
	if err := uc.MessageRepo.Create(ctx, msg); err != nil {
		log.Error("failed to record outreach message", zap.Error(err))
		result.failure(lead.Email, "failed to record outreach message: "+err.Error())
		return
	}

	if !delivery.Success {
		log.Warn("outreach delivery failed", zap.String("error", delivery.Error))
		result.failure(lead.Email, delivery.Error)
		return
	}

	statusChanged := lead.RecordSuccessfulSend(sentAt)
	if err := uc.LeadRepo.MarkContacted(ctx, lead.ID, lead.Status, sentAt); err != nil {
		log.Error("failed to update lead after send", zap.Error(err))
		result.failure(lead.Email, "failed to update lead: "+err.Error())
		return
	}
	result.success()

	if statusChanged {
		publishLeadEvent(ctx, uc.Events, uc.Logger, queue.EventLeadContacted, lead, sentAt)
	}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// orderLeads returns leads in the order of ids, dropping unknown ids.
func orderLeads(ids []string, leads []*entity.Lead) []*entity.Lead {
	byID := make(map[string]*entity.Lead, len(leads))
	for _, l := range leads {
		if l != nil {
			byID[l.ID] = l
		}
	}
	out := make([]*entity.Lead, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// publishLeadEvent is best effort: the lead change is already durable.
func publishLeadEvent(ctx context.Context, events LeadEventPublisher, logger *zap.Logger, eventType string, lead *entity.Lead, at time.Time) {
	if events == nil {
		return
	}
	payload := queue.NewLeadEventPayload(eventType, lead.ID, lead.Email, lead.FirstName, lead.LastName, lead.CompanyName, string(lead.Status), at)
	if err := events.PublishLeadEvent(ctx, payload); err != nil {
		logger.Warn("lead event not published",
			zap.String("event", eventType),
			zap.String("lead_id", lead.ID),
			zap.Error(err),
		)
	}
}
