package availability

import (
	"context"
	"errors"

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

func (r *Repository) ListWindows(ctx context.Context, mentorID int64) ([]Window, error) {
	var windows []Window
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("day_of_week, start_time, id").
		Find(&windows).Error
	return windows, err
}

// ReplaceWindows swaps the mentor's weekly windows. Run it inside a transaction.
func (r *Repository) ReplaceWindows(ctx context.Context, mentorID int64, windows []Window) error {
	if err := r.db.WithContext(ctx).Where("mentor_id = ?", mentorID).Delete(&Window{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&windows).Error
}

func (r *Repository) ListDates(ctx context.Context, mentorID int64, from, to string) ([]Date, error) {
	q := r.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("mentor_id = ?", mentorID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	dates := []Date{}
	err := q.Order("date").Find(&dates).Error
	return dates, err
}

// DatesOn returns every mentor's entry for one calendar date.
func (r *Repository) DatesOn(ctx context.Context, date string) ([]Date, error) {
	var dates []Date
	err := r.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("date = ?", date).
		Order("mentor_id").
		Find(&dates).Error
	return dates, err
}

func (r *Repository) GetDate(ctx context.Context, mentorID, dateID int64) (*Date, error) {
	var d Date
	err := r.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("id = ? AND mentor_id = ?", dateID, mentorID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDateNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) FindDate(ctx context.Context, mentorID int64, date string) (*Date, error) {
	var d Date
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND date = ?", mentorID, date).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDateNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CreateDate inserts d together with its slots.
func (r *Repository) CreateDate(ctx context.Context, d *Date) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) AddSlots(ctx context.Context, dateID int64, slots []Slot) error {
	if len(slots) == 0 {
		return nil
	}
	for i := range slots {
		slots[i].DateID = dateID
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

// DeleteDate removes a date and its slots. Deleting a missing date is not an error.
func (r *Repository) DeleteDate(ctx context.Context, mentorID, dateID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND mentor_id = ?", dateID, mentorID).Delete(&Date{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.Error
	}
	return r.db.WithContext(ctx).Where("date_id = ?", dateID).Delete(&Slot{}).Error
}

func (r *Repository) DeleteAllDates(ctx context.Context, mentorID int64) error {
	ids := r.db.Model(&Date{}).Select("id").Where("mentor_id = ?", mentorID)
	if err := r.db.WithContext(ctx).Where("date_id IN (?)", ids).Delete(&Slot{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("mentor_id = ?", mentorID).Delete(&Date{}).Error
}

func (r *Repository) GetSlot(ctx context.Context, dateID, slotID int64) (*Slot, error) {
	var s Slot
	err := r.db.WithContext(ctx).Where("id = ? AND date_id = ?", slotID, dateID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) SaveSlotStatus(ctx context.Context, s *Slot) error {
	return r.db.WithContext(ctx).
		Model(s).
		Select("is_booked", "session_id").
		Updates(s).Error
}

func orderSlots(db *gorm.DB) *gorm.DB {
	return db.Order("start_time, id")
}
