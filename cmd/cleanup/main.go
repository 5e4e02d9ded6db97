package main

import (
	"context"
	"log"

	"mentorship/internal/config"
	"mentorship/internal/database"
	"mentorship/internal/domain/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := notification.NewService(notification.NewRepository(db), nil)
	deleted, err := svc.Cleanup(context.Background(), cfg.NotificationRetention)
	if err != nil {
		log.Fatalf("notification cleanup failed: %v", err)
	}

	log.Printf("cleanup completed: notifications=%d", deleted)
}
