package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/config"
	"github.com/xavierca1/ligue-outreach/internal/infra/database"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/resend"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/logging"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.RunMigrations {
		res, err := database.Migrate(db)
		if err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		logger.Info("migrations applied", zap.Uint("version", res.Version), zap.Bool("changed", res.Changed))
	}

	if cfg.CalendlySigningKey == "" {
		logger.Warn("CALENDLY_WEBHOOK_SIGNING_KEY is empty; webhook requests will fail")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	offerRepo := database.NewOfferConfigRepository(db)
	messageRepo := database.NewOutreachMessageRepository(db)

	// 2. Gateways and adapters
	gateway := newNotificationGateway(cfg, logger)

	var (
		events   usecase.LeadEventPublisher
		rabbitMQ *queue.RabbitMQ
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, lead events disabled", zap.Error(err))
		} else {
			defer rabbitMQ.Close()

			producer := queue.NewProducer(rabbitMQ.Ch)
			producer.OnPublish = middleware.RecordLeadEvent
			events = producer

			// consumers get their own channel
			consumerCh, err := rabbitMQ.Conn.Channel()
			if err != nil {
				logger.Fatal("failed to open consumer channel", zap.Error(err))
			}
			var crm queue.CRMClient
			if cfg.KommoAPIToken != "" {
				crm = kommo.NewClient(cfg.KommoAPIToken, cfg.KommoBaseURL, cfg.KommoStatusID, logger.Named("kommo"))
			}
			worker := queue.NewWorker(consumerCh, crm, logger.Named("worker"))
			worker.OnError = middleware.RecordIntegrationError
			go func() {
				if err := worker.Start(ctx, queue.QueueName); err != nil {
					logger.Error("worker stopped", zap.Error(err))
				}
			}()
		}
	}

	// 3. Use cases
	sendOutreachUC := usecase.NewSendOutreachUseCase(
		leadRepo, templateRepo, offerRepo, messageRepo, gateway, events,
		logger.Named("outreach"), cfg.OutreachConcurrency,
	)
	webhookUC := usecase.NewProcessCalendlyWebhookUseCase(leadRepo, events, cfg.CalendlySigningKey, logger.Named("calendly"))

	// 4. Handlers
	var rabbitCheck handlers.Checker
	if rabbitMQ != nil {
		rabbitCheck = rabbitMQ
	}

	h := routeHandlers{
		Outreach: handlers.NewOutreachHandler(sendOutreachUC, logger),
		Calendly: handlers.NewCalendlyWebhookHandler(webhookUC, logger),
		Leads: handlers.NewLeadHandler(handlers.LeadUseCases{
			Create:  usecase.NewCreateLeadUseCase(leadRepo),
			List:    usecase.NewListLeadsUseCase(leadRepo),
			Get:     usecase.NewGetLeadUseCase(leadRepo, messageRepo),
			Update:  usecase.NewUpdateLeadUseCase(leadRepo),
			Delete:  usecase.NewDeleteLeadUseCase(leadRepo),
			Import:  usecase.NewImportLeadsUseCase(leadRepo, logger.Named("import")),
			Capture: usecase.NewCaptureLeadUseCase(leadRepo),
		}, cfg.CaptureRateLimit, logger),
		Templates: handlers.NewTemplateHandler(
			usecase.NewCreateTemplateUseCase(templateRepo),
			usecase.NewUpdateTemplateUseCase(templateRepo),
			usecase.NewGetTemplateUseCase(templateRepo),
			usecase.NewListTemplatesUseCase(templateRepo),
			usecase.NewDeleteTemplateUseCase(templateRepo),
		),
		Offer: handlers.NewOfferConfigHandler(
			usecase.NewGetOfferConfigUseCase(offerRepo),
			usecase.NewUpsertOfferConfigUseCase(offerRepo),
		),
		Health: handlers.NewHealthHandler(db, rabbitCheck, cfg.MailProvider),
	}

	// 5. Router
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newRouter(h, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("mail_provider", cfg.MailProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newNotificationGateway(cfg *config.Config, logger *zap.Logger) usecase.NotificationGateway {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		return mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
	case config.MailProviderResend:
		if cfg.ResendAPIKey == "" {
			logger.Warn("RESEND_API_KEY is empty; every send will fail")
		}
		return resend.NewClient(cfg.ResendAPIKey, cfg.ResendURL)
	default:
		if cfg.MailProvider != config.MailProviderLog {
			logger.Warn("unknown MAIL_PROVIDER, falling back to log", zap.String("provider", cfg.MailProvider))
		}
		return mail.NewLogSender(logger.Named("mail"))
	}
}
