package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"mentorship/internal/database"
	"mentorship/internal/domain/account"
	"mentorship/internal/domain/availability"
	"mentorship/internal/domain/notification"
	"mentorship/internal/domain/review"
	"mentorship/internal/pkg/apperr"
	"mentorship/internal/pkg/keylock"
	"mentorship/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	MinDuration = 15
	MaxDuration = 480

	DefaultCancellationWindow = 24 * time.Hour
)

// Notifier receives session events after they commit.
type Notifier interface {
	Notify(ctx context.Context, ev notification.Event)
}

type Options struct {
	Retries            int
	CancellationWindow time.Duration
	MeetingBaseURL     string
}

// Service is the booking engine and session state machine. Everything that
// reads a mentor's calendar and then writes to it runs under that mentor's
// key in locks and inside one transaction holding the mentor's profile row.
type Service struct {
	db       *gorm.DB
	repo     *Repository
	accounts *account.Repository
	windows  *availability.Repository
	reviews  *review.Service
	notifier Notifier
	locks    *keylock.Locker
	opts     Options
	now      func() time.Time
	tracer   trace.Tracer
}

func NewService(
	db *gorm.DB,
	repo *Repository,
	accounts *account.Repository,
	windows *availability.Repository,
	reviews *review.Service,
	notifier Notifier,
	locks *keylock.Locker,
	opts Options,
) *Service {
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	if opts.CancellationWindow <= 0 {
		opts.CancellationWindow = DefaultCancellationWindow
	}
	return &Service{
		db:       db,
		repo:     repo,
		accounts: accounts,
		windows:  windows,
		reviews:  reviews,
		notifier: notifier,
		locks:    locks,
		opts:     opts,
		now:      time.Now,
		tracer:   telemetry.Tracer("mentorship/booking"),
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type BookInput struct {
	LearnerID   int64
	MentorID    int64
	Title       string
	Description string
	StartTime   time.Time
	Duration    int
	MeetingType MeetingType
}

// BookSession creates a pending session. Checks run in a fixed order and
// nothing is written unless all of them pass.
func (s *Service) BookSession(ctx context.Context, in BookInput) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "booking.BookSession")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("mentor.id", in.MentorID),
		attribute.Int64("learner.id", in.LearnerID),
		attribute.Int("duration", in.Duration),
	)

	in.Title = strings.TrimSpace(in.Title)
	if in.MeetingType == "" {
		in.MeetingType = MeetingVideo
	}

	start := in.StartTime.UTC().Truncate(time.Second)
	end := start.Add(time.Duration(in.Duration) * time.Minute)

	unlock := s.locks.Lock(in.MentorID)
	defer unlock()

	var created *Session
	err := database.WithRetry(ctx, s.opts.Retries, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			accounts := s.accounts.WithTx(tx)
			repo := s.repo.WithTx(tx)

			mentor, err := accounts.LockMentor(ctx, in.MentorID)
			if err != nil {
				if errors.Is(err, account.ErrMentorNotFound) {
					return ErrMentorNotFound
				}
				return err
			}
			if !mentor.Bookable() {
				return ErrMentorUnavailable
			}

			if err := validateBookInput(in); err != nil {
				return err
			}
			if !start.After(s.now()) {
				return ErrStartNotInFuture
			}

			windows, err := s.windows.WithTx(tx).ListWindows(ctx, in.MentorID)
			if err != nil {
				return err
			}
			if !availability.Covers(windows, start, end) {
				return ErrOutsideAvailability
			}

			live, err := repo.ListLiveByMentor(ctx, in.MentorID)
			if err != nil {
				return err
			}
			if clash := DetectConflict(live, start, end); clash != nil {
				return apperr.WithDetails(ErrConflict, map[string]string{
					"conflicting_session_id": fmt.Sprint(clash.ID),
				})
			}

			learner, err := accounts.GetByID(ctx, in.LearnerID)
			if err != nil {
				if errors.Is(err, account.ErrNotFound) {
					return ErrLearnerNotFound
				}
				return err
			}
			if learner.Kind != account.KindLearner || !learner.IsActive {
				return ErrLearnerNotFound
			}

			sess := &Session{
				MentorID:        in.MentorID,
				LearnerID:       in.LearnerID,
				Title:           in.Title,
				Description:     strings.TrimSpace(in.Description),
				MeetingType:     in.MeetingType,
				StartTime:       start,
				EndTime:         end,
				Duration:        in.Duration,
				Status:          StatusPending,
				Price:           Price(mentor.Mentor.HourlyRate, in.Duration),
				MentorTimeZone:  mentor.TimeZone,
				LearnerTimeZone: learner.TimeZone,
			}
			if err := repo.Create(ctx, sess); err != nil {
				return err
			}
			if err := accounts.AddActiveSession(ctx, in.MentorID, sess.ID); err != nil {
				return err
			}
			created = sess
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrRetriesExhausted) {
			err = apperr.Wrap(ErrBusy, err)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("session.id", created.ID))
	log.Printf("session_booked session_id=%d mentor_id=%d learner_id=%d start=%s duration=%d price=%.2f",
		created.ID, created.MentorID, created.LearnerID, created.StartTime.Format(time.RFC3339), created.Duration, created.Price)

	s.notify(ctx, notification.Event{
		UserID:  created.MentorID,
		Type:    notification.TypeSessionRequested,
		Title:   "New session request",
		Message: fmt.Sprintf("%s on %s", created.Title, created.StartTime.Format(time.RFC3339)),
		Data:    sessionData(created),
	})
	return created, nil
}

func validateBookInput(in BookInput) error {
	if in.Title == "" {
		return apperr.WithDetails(ErrInvalidRequest, map[string]string{"title": "required"})
	}
	if in.Duration < MinDuration || in.Duration > MaxDuration {
		return ErrInvalidDuration
	}
	if !in.MeetingType.Valid() {
		return apperr.WithDetails(ErrInvalidRequest, map[string]string{"meeting_type": "must be video, audio or chat"})
	}
	return nil
}

// Price is hourlyRate * minutes / 60, rounded to cents.
func Price(hourlyRate float64, minutes int) float64 {
	return math.Round(hourlyRate*float64(minutes)/60*100) / 100
}

// Transition moves a session along the lifecycle on behalf of actorID.
func (s *Service) Transition(ctx context.Context, sessionID, actorID int64, to Status, reason string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "booking.Transition")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("session.id", sessionID),
		attribute.Int64("actor.id", actorID),
		attribute.String("status.to", string(to)),
	)

	if !to.Valid() {
		return nil, apperr.WithDetails(ErrInvalidRequest, map[string]string{"status": "unknown status"})
	}

	var (
		updated *Session
		from    Status
		party   Party
	)
	err := s.withSession(ctx, sessionID, func(tx *gorm.DB, sess *Session) error {
		now := s.now().UTC()
		p, err := checkTransition(sess, actorID, to, now, s.opts.CancellationWindow)
		if err != nil {
			return err
		}
		from = sess.Status
		party = p
		applyTransition(sess, p, to, strings.TrimSpace(reason), now)

		if err := s.repo.WithTx(tx).Save(ctx, sess); err != nil {
			return err
		}

		accounts := s.accounts.WithTx(tx)
		if to.Terminal() {
			if err := accounts.RemoveActiveSession(ctx, sess.MentorID, sess.ID); err != nil {
				return err
			}
		}
		if to == StatusCompleted {
			if err := accounts.IncrementSessionsCompleted(ctx, sess.MentorID); err != nil {
				return err
			}
		}
		updated = sess
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	log.Printf("session_transition session_id=%d from=%s to=%s by=%s", updated.ID, from, to, party)
	s.notify(ctx, transitionEvent(updated, party, to))
	return updated, nil
}

// SubmitFeedback records one party's feedback on a completed session. A
// learner's rating also updates the mentor's aggregate in the same
// transaction; the returned aggregate is nil for mentor feedback.
func (s *Service) SubmitFeedback(ctx context.Context, sessionID, actorID int64, content string, rating int) (*Session, *review.Aggregate, error) {
	ctx, span := s.tracer.Start(ctx, "booking.SubmitFeedback")
	defer span.End()
	span.SetAttributes(attribute.Int64("session.id", sessionID), attribute.Int("rating", rating))

	if rating < 1 || rating > 5 {
		return nil, nil, ErrInvalidFeedback
	}
	content = strings.TrimSpace(content)

	var (
		updated *Session
		agg     *review.Aggregate
		party   Party
	)
	err := s.withSession(ctx, sessionID, func(tx *gorm.DB, sess *Session) error {
		p, ok := sess.PartyOf(actorID)
		if !ok {
			return ErrNotParty
		}
		if sess.Status != StatusCompleted {
			return ErrNotCompleted
		}

		fb := &Feedback{Content: content, Rating: rating, SubmittedAt: s.now().UTC()}
		switch p {
		case PartyMentor:
			if sess.MentorFeedback != nil {
				return ErrFeedbackExists
			}
			sess.MentorFeedback = fb
		case PartyLearner:
			if sess.LearnerFeedback != nil {
				return ErrFeedbackExists
			}
			sess.LearnerFeedback = fb
		}
		if err := s.repo.WithTx(tx).Save(ctx, sess); err != nil {
			return err
		}

		if p == PartyLearner {
			a, _, err := s.reviews.ApplyFeedback(ctx, tx, review.Feedback{
				MentorID:   sess.MentorID,
				ReviewerID: sess.LearnerID,
				SessionID:  sess.ID,
				Rating:     rating,
				Comment:    content,
			})
			if err != nil {
				return err
			}
			agg = a
		}
		updated = sess
		party = p
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	log.Printf("session_feedback session_id=%d by=%s rating=%d", updated.ID, party, rating)
	s.notify(ctx, notification.Event{
		UserID:  updated.Counterpart(party),
		Type:    notification.TypeFeedbackReceived,
		Title:   "New feedback",
		Message: fmt.Sprintf("You received a %d-star rating for %s", rating, updated.Title),
		Data:    sessionData(updated),
	})
	return updated, agg, nil
}

// GenerateMeetingLink attaches a fresh meeting URL to a confirmed session.
func (s *Service) GenerateMeetingLink(ctx context.Context, sessionID, actorID int64) (*Session, error) {
	var updated *Session
	err := s.withSession(ctx, sessionID, func(tx *gorm.DB, sess *Session) error {
		p, ok := sess.PartyOf(actorID)
		if !ok {
			return ErrNotParty
		}
		if p != PartyMentor {
			return ErrMentorOnly
		}
		if sess.Status != StatusConfirmed {
			return ErrNotConfirmed
		}

		sess.MeetingLink = strings.TrimRight(s.opts.MeetingBaseURL, "/") + "/" + uuid.NewString()
		if err := s.repo.WithTx(tx).Save(ctx, sess); err != nil {
			return err
		}
		updated = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notification.Event{
		UserID:  updated.LearnerID,
		Type:    notification.TypeMeetingLinkReady,
		Title:   "Meeting link ready",
		Message: updated.MeetingLink,
		Data:    sessionData(updated),
	})
	return updated, nil
}

// GetSession returns a session to one of its parties or an admin.
func (s *Service) GetSession(ctx context.Context, sessionID, userID int64, role string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if role == string(account.KindAdmin) {
		return sess, nil
	}
	if _, ok := sess.PartyOf(userID); !ok {
		return nil, ErrNotParty
	}
	return sess, nil
}

type ListQuery struct {
	Role      Party
	Status    Status
	Timeframe Timeframe
	Page      int
	Limit     int
}

func (s *Service) ListSessions(ctx context.Context, userID int64, q ListQuery) ([]Session, int64, error) {
	details := map[string]string{}
	if q.Role != "" && q.Role != PartyMentor && q.Role != PartyLearner {
		details["role"] = "must be mentor or learner"
	}
	if q.Status != "" && !q.Status.Valid() {
		details["status"] = "unknown status"
	}
	switch q.Timeframe {
	case "", TimeframeUpcoming, TimeframePast, TimeframeToday:
	default:
		details["timeframe"] = "must be upcoming, past or today"
	}
	if len(details) > 0 {
		return nil, 0, apperr.WithDetails(ErrInvalidRequest, details)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	return s.repo.List(ctx, ListFilter{
		UserID:    userID,
		Role:      q.Role,
		Status:    q.Status,
		Timeframe: q.Timeframe,
		Now:       s.now(),
		Limit:     q.Limit,
		Offset:    (q.Page - 1) * q.Limit,
	})
}

// withSession runs fn under the session's mentor lock with the session row
// loaded for update.
func (s *Service) withSession(ctx context.Context, sessionID int64, fn func(tx *gorm.DB, sess *Session) error) error {
	existing, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(existing.MentorID)
	defer unlock()

	err = database.WithRetry(ctx, s.opts.Retries, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			sess, err := s.repo.WithTx(tx).GetForUpdate(ctx, sessionID)
			if err != nil {
				return err
			}
			return fn(tx, sess)
		})
	})
	if errors.Is(err, database.ErrRetriesExhausted) {
		return apperr.Wrap(ErrBusy, err)
	}
	return err
}

func (s *Service) notify(ctx context.Context, ev notification.Event) {
	if s.notifier == nil || ev.UserID == 0 {
		return
	}
	s.notifier.Notify(ctx, ev)
}

func transitionEvent(sess *Session, by Party, to Status) notification.Event {
	ev := notification.Event{
		UserID: sess.Counterpart(by),
		Data:   sessionData(sess),
	}
	switch to {
	case StatusConfirmed:
		ev.Type, ev.Title = notification.TypeSessionConfirmed, "Session confirmed"
	case StatusCancelled:
		ev.Type, ev.Title = notification.TypeSessionCancelled, "Session cancelled"
		ev.Message = sess.CancellationReason
	case StatusCompleted:
		ev.Type, ev.Title = notification.TypeSessionCompleted, "Session completed"
	case StatusNoShow:
		ev.Type, ev.Title = notification.TypeSessionNoShow, "Session marked as no-show"
	}
	if ev.Message == "" {
		ev.Message = sess.Title
	}
	return ev
}

func sessionData(sess *Session) map[string]any {
	return map[string]any{
		"session_id": sess.ID,
		"status":     sess.Status,
		"start_time": sess.StartTime.Format(time.RFC3339),
	}
}
