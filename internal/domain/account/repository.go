package account

import (
	"context"
	"errors"
	"strings"

	"mentorship/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Create(ctx context.Context, a *Account) error {
	a.Email = normalizeEmail(a.Email)
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).Preload("Mentor").First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).Preload("Mentor").Where("email = ?", normalizeEmail(email)).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetMentor(ctx context.Context, id int64) (*Account, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	if a.Kind != KindMentor || a.Mentor == nil {
		return nil, ErrMentorNotFound
	}
	return a, nil
}

// LockMentor loads the mentor and takes a row lock on its profile for the
// rest of the transaction. SQLite ignores the locking clause and relies on
// its single writer.
func (r *Repository) LockMentor(ctx context.Context, id int64) (*Account, error) {
	var profile MentorProfile
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", id).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}

	var a Account
	err = r.db.WithContext(ctx).Where("id = ? AND kind = ?", id, KindMentor).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	a.Mentor = &profile
	return &a, nil
}

func (r *Repository) UpdateMentorProfile(ctx context.Context, p *MentorProfile) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select("headline", "bio", "skills", "hourly_rate").
		Updates(p).Error
}

func (r *Repository) UpdateRating(ctx context.Context, mentorID int64, average float64, total int) error {
	return r.db.WithContext(ctx).
		Model(&MentorProfile{}).
		Where("account_id = ?", mentorID).
		Updates(map[string]any{
			"average_rating": average,
			"total_ratings":  total,
		}).Error
}

func (r *Repository) IncrementSessionsCompleted(ctx context.Context, mentorID int64) error {
	return r.db.WithContext(ctx).
		Model(&MentorProfile{}).
		Where("account_id = ?", mentorID).
		Update("sessions_completed", gorm.Expr("sessions_completed + 1")).Error
}

func (r *Repository) SetVerified(ctx context.Context, mentorID int64, verified bool) error {
	res := r.db.WithContext(ctx).
		Model(&MentorProfile{}).
		Where("account_id = ?", mentorID).
		Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMentorNotFound
	}
	return nil
}

func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AddActiveSession(ctx context.Context, mentorID, sessionID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ActiveSession{MentorID: mentorID, SessionID: sessionID}).Error
}

func (r *Repository) RemoveActiveSession(ctx context.Context, mentorID, sessionID int64) error {
	return r.db.WithContext(ctx).
		Where("mentor_id = ? AND session_id = ?", mentorID, sessionID).
		Delete(&ActiveSession{}).Error
}

func (r *Repository) ListActiveSessions(ctx context.Context, mentorID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&ActiveSession{}).
		Where("mentor_id = ?", mentorID).
		Order("session_id").
		Pluck("session_id", &ids).Error
	return ids, err
}

type MentorFilter struct {
	Skills       []string
	VerifiedOnly bool
	Limit        int
	Offset       int
}

// ListMentors returns active mentors. The skill filter runs in memory since
// skills are stored as a JSON column.
func (r *Repository) ListMentors(ctx context.Context, f MentorFilter) ([]Account, int64, error) {
	q := r.db.WithContext(ctx).
		Select("accounts.*").
		Preload("Mentor").
		Joins("JOIN mentor_profiles ON mentor_profiles.account_id = accounts.id").
		Where("accounts.kind = ? AND accounts.is_active = ?", KindMentor, true)
	if f.VerifiedOnly {
		q = q.Where("mentor_profiles.is_verified = ?", true)
	}

	var all []Account
	if err := q.Order("mentor_profiles.average_rating DESC, accounts.id").Find(&all).Error; err != nil {
		return nil, 0, err
	}

	matched := all[:0]
	for _, a := range all {
		if a.Mentor != nil && a.Mentor.HasAnySkill(f.Skills) {
			matched = append(matched, a)
		}
	}

	total := int64(len(matched))
	start := min(max(f.Offset, 0), len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

// FindBookable narrows ids to active, verified mentors with any of skills.
func (r *Repository) FindBookable(ctx context.Context, ids []int64, skills []string) ([]Account, error) {
	if len(ids) == 0 {
		return []Account{}, nil
	}

	var found []Account
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("id IN ? AND kind = ? AND is_active = ?", ids, KindMentor, true).
		Order("id").
		Find(&found).Error
	if err != nil {
		return nil, err
	}

	out := make([]Account, 0, len(found))
	for _, a := range found {
		if a.Bookable() && a.Mentor.HasAnySkill(skills) {
			out = append(out, a)
		}
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
