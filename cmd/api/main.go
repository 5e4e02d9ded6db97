package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mentorship/internal/app"
	"mentorship/internal/config"
	"mentorship/internal/database"
	jwtsvc "mentorship/internal/pkg/jwt"
	"mentorship/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "mentorship-api", cfg.OTelEnabled, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("telemetry setup failed: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := app.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	a, err := app.New(app.Deps{
		DB:     db,
		Config: cfg,
		JWT:    jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL),
	})
	if err != nil {
		log.Fatal(err)
	}
	a.Notifications.ScheduleCleanup(ctx, cfg.NotificationRetention, 24*time.Hour)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(a.Router, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
