package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/database"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/handlers"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/middleware"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/mail"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/queue"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatalf("rabbitmq unreachable: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	orderRepo := database.NewOrderRepository(db)
	serviceRepo := database.NewServiceRepository(db)
	profileRepo := database.NewProfileRepository(db)
	sessionRepo := database.NewCheckoutSessionRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	smtpPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), smtpPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"), os.Getenv("SITE_URL"),
	)

	// 3. Fulfillment worker (consumes confirmed checkouts)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	initiateUC := usecase.NewInitiateCheckoutUseCase(
		profileRepo, paymentRepo, orderRepo, serviceRepo, sessionRepo,
		mailSender, os.Getenv("CHECKOUT_BASE_URL"),
	)
	confirmUC := usecase.NewConfirmCheckoutUseCase(
		sessionRepo, paymentRepo, orderRepo, profileRepo, producer,
	)
	adminUC := usecase.NewAdminTransitionsUseCase(profileRepo, paymentRepo, orderRepo)
	kpiUC := usecase.NewKpiUseCase(leadRepo)
	leadUC := usecase.NewLeadUseCase(leadRepo, profileRepo, os.Getenv("DEFAULT_LEAD_OWNER_ID"))

	// 5. Handlers
	checkoutHandler := handlers.NewCheckoutHandler(initiateUC, confirmUC)
	adminHandler := handlers.NewAdminHandler(adminUC)
	kpiHandler := handlers.NewKpiHandler(kpiUC, profileRepo)
	leadHandler := handlers.NewLeadHandler(leadUC)
	catalogHandler := handlers.NewCatalogHandler(serviceRepo)
	accountHandler := handlers.NewAccountHandler(paymentRepo, orderRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{frontendOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/leads", leadHandler.HandleCapture)
	r.Get("/services", catalogHandler.HandleList)
	r.Get("/services/{id}", catalogHandler.HandleGet)
	r.Post("/checkout", checkoutHandler.HandleInitiate)
	r.Post("/checkout/confirm", checkoutHandler.HandleConfirm)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)

		r.Route("/me", func(r chi.Router) {
			r.Get("/payments", accountHandler.HandlePayments)
			r.Get("/orders", accountHandler.HandleOrders)
		})

		r.Route("/crm", func(r chi.Router) {
			r.Get("/kpi/metrics", kpiHandler.HandleMetrics)
			r.Get("/kpi/breakdown", kpiHandler.HandleBreakdown)
			r.Get("/kpi/timeseries", kpiHandler.HandleTimeSeries)
			r.Get("/kpi/marketers", kpiHandler.HandleMarketers)
			r.Get("/kpi/sources", kpiHandler.HandleSources)

			r.Get("/leads", leadHandler.HandleList)
			r.Post("/leads", leadHandler.HandleCreate)
			r.Patch("/leads/{id}/status", leadHandler.HandleUpdateStatus)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/payments/{id}/paid", adminHandler.HandleMarkPaid)
			r.Post("/payments/{id}/reject", adminHandler.HandleRejectPayment)
			r.Post("/orders/{id}/complete", adminHandler.HandleCompleteOrder)
			r.Post("/orders/{id}/cancel", adminHandler.HandleCancelOrder)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("WeTrain API listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
