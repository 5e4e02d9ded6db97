package booking

import (
	"context"
	"errors"
	"time"

	"mentorship/internal/domain/availability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetForUpdate loads the session with a row lock held until the
// transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Save(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// ListLiveByMentor returns the mentor's pending and confirmed sessions.
func (r *Repository) ListLiveByMentor(ctx context.Context, mentorID int64) ([]Session, error) {
	var out []Session
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND status IN ?", mentorID, liveStatuses).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

type Timeframe string

const (
	TimeframeUpcoming Timeframe = "upcoming"
	TimeframePast     Timeframe = "past"
	TimeframeToday    Timeframe = "today"
)

type ListFilter struct {
	UserID    int64
	Role      Party // empty: either side
	Status    Status
	Timeframe Timeframe
	Now       time.Time
	Limit     int
	Offset    int
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Session, int64, error) {
	q := r.db.WithContext(ctx).Model(&Session{})

	switch f.Role {
	case PartyMentor:
		q = q.Where("mentor_id = ?", f.UserID)
	case PartyLearner:
		q = q.Where("learner_id = ?", f.UserID)
	default:
		q = q.Where("mentor_id = ? OR learner_id = ?", f.UserID, f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	now := f.Now.UTC().Truncate(time.Second)
	order := "start_time DESC"
	switch f.Timeframe {
	case TimeframeUpcoming:
		q = q.Where("start_time >= ?", now)
		order = "start_time ASC"
	case TimeframePast:
		q = q.Where("end_time < ?", now)
	case TimeframeToday:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
		order = "start_time ASC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Session
	err := q.Order(order).Order("id").
		Limit(f.Limit).
		Offset(max(f.Offset, 0)).
		Find(&out).Error
	return out, total, err
}

// LookupSessions serves the availability store's slot projection.
func (r *Repository) LookupSessions(ctx context.Context, ids []int64) (map[int64]availability.SessionRef, error) {
	out := make(map[int64]availability.SessionRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []Session
	err := r.db.WithContext(ctx).
		Select("id", "mentor_id", "start_time", "end_time", "status").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = availability.SessionRef{
			ID:        s.ID,
			MentorID:  s.MentorID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Live:      s.Status.Live(),
		}
	}
	return out, nil
}
