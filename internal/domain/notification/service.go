package notification

import (
	"context"
	"log"
	"time"
)

type Service struct {
	repo *Repository
	hub  *Hub
	now  func() time.Time
}

func NewService(repo *Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Notify stores ev and pushes it to the recipient's open sockets. Failures
// are logged and never returned: producers must not fail on delivery.
func (s *Service) Notify(ctx context.Context, ev Event) {
	ctx = context.WithoutCancel(ctx)

	n := &Notification{
		UserID:  ev.UserID,
		Type:    ev.Type,
		Title:   ev.Title,
		Message: ev.Message,
		Data:    ev.Data,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification_store_failed user_id=%d type=%s err=%v", ev.UserID, ev.Type, err)
		return
	}

	if s.hub != nil {
		s.hub.Push(ev.UserID, &WSEvent{Type: EventNotification, Payload: n})
	}
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, page, limit int) ([]Notification, int64, int64, error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID, s.now().UTC())
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID, s.now().UTC())
}
