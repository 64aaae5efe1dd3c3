package main

import (
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"quote-generator-api/config"
	"quote-generator-api/handlers"
	"quote-generator-api/middleware"
	"quote-generator-api/services/forwarder"
	"quote-generator-api/services/quote"
	"quote-generator-api/services/webhook"
)

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	store *webhook.Store,
	fwd *forwarder.Forwarder,
	pdf *quote.PDFGenerator,
	redisClient *redis.Client,
) *mux.Router {
	httpLogger := logger.With("component", "http")

	healthHandler := handlers.NewHealthHandler(redisClient)
	webhookHandler := handlers.NewWebhookHandler(store, httpLogger)
	submitHandler := handlers.NewSubmitHandler(store, fwd, cfg.Webhook.FeedbackURL, httpLogger)
	previewHandler := handlers.NewPreviewHandler(pdf, httpLogger)

	router := mux.NewRouter()
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowLocalhost, httpLogger))
	router.Use(middleware.Logging(httpLogger))
	router.Use(middleware.SecurityHeadersMiddleware)
	if redisClient != nil {
		router.Use(middleware.NewRateLimiter(redisClient, logger.With("component", "rate_limit")).RateLimitMiddleware())
	} else {
		router.Use(middleware.NewLocalRateLimiter(logger.With("component", "rate_limit")).RateLimitMiddleware())
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", healthHandler.Health).Methods("GET", "OPTIONS")

	api.HandleFunc("/webhook", webhookHandler.SetWebhook).Methods("POST", "OPTIONS")
	api.HandleFunc("/webhook", webhookHandler.GetWebhook).Methods("GET")
	api.HandleFunc("/webhook", webhookHandler.ClearWebhook).Methods("DELETE")

	api.HandleFunc("/submit-quote", submitHandler.SubmitQuote).Methods("POST", "OPTIONS")
	api.HandleFunc("/submit-feedback", submitHandler.SubmitFeedback).Methods("POST", "OPTIONS")

	api.HandleFunc("/preview", previewHandler.Preview).Methods("POST", "OPTIONS")
	api.HandleFunc("/preview/pdf", previewHandler.PreviewPDF).Methods("POST", "OPTIONS")

	return router
}
