package notification

import (
	"context"
	"log"
	"time"
)

// Cleanup deletes read notifications older than retention.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	started := time.Now()
	cutoff := s.now().UTC().Add(-retention)

	deleted, err := s.repo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("notification_cleanup_failed err=%v", err)
		return 0, err
	}

	log.Printf("notification_cleanup deleted=%d cutoff=%s took=%s", deleted, cutoff.Format(time.RFC3339), time.Since(started))
	return deleted, nil
}

// ScheduleCleanup runs Cleanup every interval until ctx is done.
func (s *Service) ScheduleCleanup(ctx context.Context, retention, interval time.Duration) {
	if interval <= 0 {
		log.Println("notification cleanup schedule disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_, _ = s.Cleanup(ctx, retention)
			case <-ctx.Done():
				log.Println("notification cleanup schedule stopped")
				return
			}
		}
	}()

	log.Printf("notification cleanup scheduled every %s", interval)
}
