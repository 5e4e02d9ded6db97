package review

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
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

func (r *Repository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ApprovedRatings returns the ratings of the mentor's approved reviews.
// Hidden reviews still count.
func (r *Repository) ApprovedRatings(ctx context.Context, mentorID int64) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("mentor_id = ? AND status = ?", mentorID, StatusApproved).
		Order("id").
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *Repository) SetStatus(ctx context.Context, id int64, status Status, moderator int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"moderated_by": moderator,
			"moderated_at": at,
		}).Error
}

func (r *Repository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res := r.db.WithContext(ctx).Model(&Review{}).Where("id = ?", id).Update("is_hidden", hidden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Review{}, id).Error
}

type ListFilter struct {
	MentorID   int64
	Status     Status
	PublicOnly bool
	Limit      int
	Offset     int
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&Review{})
	if f.MentorID > 0 {
		q = q.Where("mentor_id = ?", f.MentorID)
	}
	if f.PublicOnly {
		q = q.Where("status = ? AND is_hidden = ?", StatusApproved, false)
	} else if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []Review{}
	err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Offset(f.Offset).Find(&items).Error
	return items, total, err
}
