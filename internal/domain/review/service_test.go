package review

import (
	"context"
	"testing"
	"time"

	"mentorship/internal/database"
	"mentorship/internal/domain/account"
	"mentorship/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminID = int64(900)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	accounts *account.Repository
	mentorID int64
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.ConnectWithOptions(":memory:", database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Account{}, &account.MentorProfile{}, &Review{}))

	accounts := account.NewRepository(db)
	mentor := &account.Account{
		Kind:         account.KindMentor,
		Email:        "mentor@example.com",
		PasswordHash: "x",
		Name:         "Mentor",
		TimeZone:     "UTC",
		IsActive:     true,
		Mentor:       &account.MentorProfile{HourlyRate: 50, IsVerified: true},
	}
	require.NoError(t, accounts.Create(context.Background(), mentor))

	fixed := time.Date(2030, 1, 6, 12, 0, 0, 0, time.UTC)
	svc := NewService(db, NewRepository(db), accounts, keylock.New(), 3).WithClock(func() time.Time { return fixed })
	return &fixture{svc: svc, db: db, accounts: accounts, mentorID: mentor.ID}
}

func (f *fixture) seed(t *testing.T, rating int, status Status) *Review {
	t.Helper()
	rv := &Review{MentorID: f.mentorID, ReviewerID: 1, Rating: rating, Status: status}
	require.NoError(t, f.db.Create(rv).Error)
	return rv
}

func (f *fixture) aggregate(t *testing.T) Aggregate {
	t.Helper()
	m, err := f.accounts.GetMentor(context.Background(), f.mentorID)
	require.NoError(t, err)
	return Aggregate{AverageRating: m.Mentor.AverageRating, TotalRatings: m.Mentor.TotalRatings}
}

func TestModeration_FullRecompute(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	a := f.seed(t, 5, StatusPending)
	b := f.seed(t, 5, StatusPending)
	c := f.seed(t, 3, StatusPending)
	d := f.seed(t, 1, StatusPending)

	for _, rv := range []*Review{a, b, c} {
		_, _, err := f.svc.Approve(ctx, rv.ID, adminID)
		require.NoError(t, err)
	}
	rejected, agg, err := f.svc.Reject(ctx, d.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ModeratedBy)
	assert.Equal(t, adminID, *rejected.ModeratedBy)
	assert.Equal(t, Aggregate{AverageRating: 4.3, TotalRatings: 3}, *agg)
	assert.Equal(t, Aggregate{AverageRating: 4.3, TotalRatings: 3}, f.aggregate(t))

	agg, err = f.svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, Aggregate{AverageRating: 5.0, TotalRatings: 2}, *agg)

	_, err = f.svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	agg, err = f.svc.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, Aggregate{}, *agg)
	assert.Equal(t, Aggregate{}, f.aggregate(t))

	_, err = f.svc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyFeedback_IncrementalPath(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.accounts.UpdateRating(ctx, f.mentorID, 4.0, 2))

	var agg *Aggregate
	var rv *Review
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		agg, rv, err = f.svc.ApplyFeedback(ctx, tx, Feedback{
			MentorID: f.mentorID, ReviewerID: 7, SessionID: 11, Rating: 5, Comment: " great ",
		})
		return err
	})
	require.NoError(t, err)

	assert.InDelta(t, 13.0/3.0, agg.AverageRating, 1e-9)
	assert.Equal(t, 3, agg.TotalRatings)
	assert.Equal(t, StatusPending, rv.Status)
	assert.Equal(t, "great", rv.Comment)

	stored := f.aggregate(t)
	assert.InDelta(t, 13.0/3.0, stored.AverageRating, 1e-9)

	// Approving the same feedback switches to the recompute path.
	_, approved, err := f.svc.Approve(ctx, rv.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, Aggregate{AverageRating: 5.0, TotalRatings: 1}, *approved)
}

func TestApplyFeedback_RejectsBadRating(t *testing.T) {
	f := setupFixture(t)
	err := f.db.Transaction(func(tx *gorm.DB) error {
		_, _, err := f.svc.ApplyFeedback(context.Background(), tx, Feedback{MentorID: f.mentorID, Rating: 6})
		return err
	})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestHideDoesNotRecompute(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rv := f.seed(t, 4, StatusPending)
	_, _, err := f.svc.Approve(ctx, rv.ID, adminID)
	require.NoError(t, err)
	before := f.aggregate(t)

	hidden, err := f.svc.SetHidden(ctx, rv.ID, true)
	require.NoError(t, err)
	assert.True(t, hidden.IsHidden)
	assert.Equal(t, before, f.aggregate(t))

	items, total, err := f.svc.ListForMentor(ctx, f.mentorID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	_, err = f.svc.SetHidden(ctx, rv.ID, false)
	require.NoError(t, err)
	_, total, err = f.svc.ListForMentor(ctx, f.mentorID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListForAdmin(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.seed(t, 4, StatusPending)
	f.seed(t, 2, StatusRejected)

	items, total, err := f.svc.ListForAdmin(ctx, 0, StatusPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 4, items[0].Rating)

	_, _, err = f.svc.ListForAdmin(ctx, 0, "weird", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
