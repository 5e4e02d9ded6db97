package review

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"mentorship/internal/database"
	"mentorship/internal/domain/account"
	"mentorship/internal/pkg/apperr"
	"mentorship/internal/pkg/keylock"
	"mentorship/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// Service is the rating aggregator. All writes to a mentor's aggregate run
// under that mentor's key in locks, which the booking engine shares.
type Service struct {
	db       *gorm.DB
	repo     *Repository
	accounts *account.Repository
	locks    *keylock.Locker
	retries  int
	now      func() time.Time
	tracer   trace.Tracer
}

func NewService(db *gorm.DB, repo *Repository, accounts *account.Repository, locks *keylock.Locker, retries int) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		accounts: accounts,
		locks:    locks,
		retries:  retries,
		now:      time.Now,
		tracer:   telemetry.Tracer("mentorship/review"),
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ApplyFeedback is the incremental path. The caller must hold the mentor's
// lock and pass its open transaction.
func (s *Service) ApplyFeedback(ctx context.Context, tx *gorm.DB, fb Feedback) (*Aggregate, *Review, error) {
	ctx, span := s.tracer.Start(ctx, "review.ApplyFeedback")
	defer span.End()
	span.SetAttributes(attribute.Int64("mentor.id", fb.MentorID), attribute.Int("rating", fb.Rating))

	if fb.Rating < 1 || fb.Rating > 5 {
		return nil, nil, ErrInvalidRating
	}

	accounts := s.accounts.WithTx(tx)
	mentor, err := accounts.LockMentor(ctx, fb.MentorID)
	if err != nil {
		return nil, nil, mapMentorErr(err)
	}

	agg := Incremental(Aggregate{
		AverageRating: mentor.Mentor.AverageRating,
		TotalRatings:  mentor.Mentor.TotalRatings,
	}, fb.Rating)
	if err := accounts.UpdateRating(ctx, fb.MentorID, agg.AverageRating, agg.TotalRatings); err != nil {
		return nil, nil, err
	}

	sessionID := fb.SessionID
	rv := &Review{
		MentorID:   fb.MentorID,
		ReviewerID: fb.ReviewerID,
		SessionID:  &sessionID,
		Rating:     fb.Rating,
		Comment:    strings.TrimSpace(fb.Comment),
		Status:     StatusPending,
	}
	if err := s.repo.WithTx(tx).Create(ctx, rv); err != nil {
		return nil, nil, err
	}

	return &agg, rv, nil
}

func (s *Service) Approve(ctx context.Context, reviewID, adminID int64) (*Review, *Aggregate, error) {
	return s.moderate(ctx, "review.Approve", reviewID, func(repo *Repository, rv *Review) error {
		now := s.now().UTC()
		rv.Status, rv.ModeratedBy, rv.ModeratedAt = StatusApproved, &adminID, &now
		return repo.SetStatus(ctx, rv.ID, StatusApproved, adminID, now)
	})
}

func (s *Service) Reject(ctx context.Context, reviewID, adminID int64) (*Review, *Aggregate, error) {
	return s.moderate(ctx, "review.Reject", reviewID, func(repo *Repository, rv *Review) error {
		now := s.now().UTC()
		rv.Status, rv.ModeratedBy, rv.ModeratedAt = StatusRejected, &adminID, &now
		return repo.SetStatus(ctx, rv.ID, StatusRejected, adminID, now)
	})
}

func (s *Service) Delete(ctx context.Context, reviewID int64) (*Aggregate, error) {
	_, agg, err := s.moderate(ctx, "review.Delete", reviewID, func(repo *Repository, rv *Review) error {
		return repo.Delete(ctx, rv.ID)
	})
	return agg, err
}

// SetHidden toggles public visibility. The aggregate is left alone.
func (s *Service) SetHidden(ctx context.Context, reviewID int64, hidden bool) (*Review, error) {
	if err := s.repo.SetHidden(ctx, reviewID, hidden); err != nil {
		return nil, err
	}
	log.Printf("review_visibility_changed review_id=%d hidden=%t", reviewID, hidden)
	return s.repo.GetByID(ctx, reviewID)
}

// ListForMentor is the public list: approved and not hidden.
func (s *Service) ListForMentor(ctx context.Context, mentorID int64, page, limit int) ([]Review, int64, error) {
	if _, err := s.accounts.GetMentor(ctx, mentorID); err != nil {
		return nil, 0, mapMentorErr(err)
	}
	return s.repo.List(ctx, ListFilter{
		MentorID:   mentorID,
		PublicOnly: true,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
}

func (s *Service) ListForAdmin(ctx context.Context, mentorID int64, status Status, page, limit int) ([]Review, int64, error) {
	switch status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, ListFilter{
		MentorID: mentorID,
		Status:   status,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

// moderate applies change and recomputes the mentor's aggregate from the
// approved set, under the mentor's lock and a row lock on its profile.
func (s *Service) moderate(ctx context.Context, op string, reviewID int64, change func(*Repository, *Review) error) (*Review, *Aggregate, error) {
	ctx, span := s.tracer.Start(ctx, op)
	defer span.End()

	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(attribute.Int64("review.id", reviewID), attribute.Int64("mentor.id", existing.MentorID))

	unlock := s.locks.Lock(existing.MentorID)
	defer unlock()

	var (
		rv  *Review
		agg Aggregate
	)
	err = database.WithRetry(ctx, s.retries, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			accounts := s.accounts.WithTx(tx)
			repo := s.repo.WithTx(tx)

			if _, err := accounts.LockMentor(ctx, existing.MentorID); err != nil {
				return mapMentorErr(err)
			}
			current, err := repo.GetByID(ctx, reviewID)
			if err != nil {
				return err
			}
			if err := change(repo, current); err != nil {
				return err
			}

			ratings, err := repo.ApprovedRatings(ctx, current.MentorID)
			if err != nil {
				return err
			}
			agg = Recompute(ratings)
			if err := accounts.UpdateRating(ctx, current.MentorID, agg.AverageRating, agg.TotalRatings); err != nil {
				return err
			}
			rv = current
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrRetriesExhausted) {
			return nil, nil, apperr.Wrap(ErrBusy, err)
		}
		span.RecordError(err)
		return nil, nil, err
	}

	log.Printf("rating_recomputed op=%s review_id=%d mentor_id=%d average=%.1f total=%d",
		op, reviewID, rv.MentorID, agg.AverageRating, agg.TotalRatings)
	return rv, &agg, nil
}

func mapMentorErr(err error) error {
	if errors.Is(err, account.ErrMentorNotFound) {
		return ErrMentorNotFound
	}
	return err
}
