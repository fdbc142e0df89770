package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/aidosk/devfolio-api/internal/config"
	"github.com/aidosk/devfolio-api/internal/infra/auth"
	"github.com/aidosk/devfolio-api/internal/infra/database"
	"github.com/aidosk/devfolio-api/internal/infra/http/handlers"
	"github.com/aidosk/devfolio-api/internal/infra/http/middleware"
	"github.com/aidosk/devfolio-api/internal/infra/integration/crm"
	"github.com/aidosk/devfolio-api/internal/infra/mail"
	"github.com/aidosk/devfolio-api/internal/infra/pdf"
	"github.com/aidosk/devfolio-api/internal/infra/queue"
	"github.com/aidosk/devfolio-api/internal/infra/storage"
	"github.com/aidosk/devfolio-api/internal/logger"
	"github.com/aidosk/devfolio-api/internal/seo"
	"github.com/aidosk/devfolio-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	slogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	briefRepo := database.NewBriefRepository(db)

	uploader, err := storage.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseServiceKey, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	mailer, err := newMailer(cfg)
	if err != nil {
		log.Fatalf("mail: %v", err)
	}

	magic, err := auth.NewMagicLink(cfg.AuthSecret, cfg.AdminEmail)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	renderer := pdf.NewRenderer()

	// Queue is an optional side channel: no AMQP_URL, no sync worker.
	var publisher usecase.EventPublisher
	var rabbitMQ *queue.RabbitMQ
	if cfg.AMQPURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("queue: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)

		if cfg.CRMWebhookURL != "" {
			crmClient := crm.NewClient(cfg.CRMWebhookURL, cfg.CRMToken)
			worker := queue.NewWorker(rabbitMQ.Ch, crmClient, briefRepo, slogger)
			go func() {
				if err := worker.Start(queue.QueueName); err != nil {
					slogger.Error("brief sync worker stopped", "error", err)
				}
			}()
		}
	}

	submitUC := usecase.NewSubmitBriefUseCase(
		briefRepo, renderer, mailer, uploader, publisher,
		cfg.NotifyEmail, cfg.NotifyName, slogger,
	)

	briefHandler := handlers.NewBriefHandler(submitUC)
	metaHandler := handlers.NewMetaHandler(seo.NewGenerator(cfg.BaseURL))
	adminHandler := handlers.NewAdminHandler(briefRepo, renderer, magic, mailer, cfg.BaseURL, slogger)
	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/api/brief", briefHandler.HandleSubmit)
	r.Get("/api/metadata", metaHandler.HandleMetadata)
	r.Get("/api/price", metaHandler.HandlePrice)

	r.Post("/api/admin/login", adminHandler.HandleLogin)
	r.Get("/api/admin/verify", adminHandler.HandleVerify)
	r.Group(func(r chi.Router) {
		r.Use(magic.Middleware)
		r.Get("/api/admin/briefs", adminHandler.HandleListBriefs)
		r.Get("/api/admin/briefs/{id}/pdf", adminHandler.HandleGetPDF)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	slogger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func newMailer(cfg *config.Config) (mail.Sender, error) {
	from := mail.Recipient{Email: cfg.MailFrom, Name: cfg.MailFromName}
	if cfg.MailTransport == config.TransportSMTP {
		return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, from)
	}
	return mail.NewBrevoClient(cfg.BrevoAPIKey, from)
}
