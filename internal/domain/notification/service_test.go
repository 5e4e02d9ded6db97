package notification

import (
	"context"
	"testing"
	"time"

	"mentorship/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	db, err := database.ConnectWithOptions(":memory:", database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Notification{}))

	repo := NewRepository(db)
	svc := NewService(repo, NewHub()).WithClock(func() time.Time { return fixedNow })
	return svc, repo
}

func TestNotify_PersistsEvent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	svc.Notify(ctx, Event{
		UserID:  7,
		Type:    TypeSessionRequested,
		Title:   "New session request",
		Message: "Intro call",
		Data:    map[string]any{"session_id": 12},
	})

	items, total, unread, err := svc.List(ctx, 7, false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), unread)
	require.Len(t, items, 1)
	assert.Equal(t, TypeSessionRequested, items[0].Type)
	assert.EqualValues(t, 12, items[0].Data["session_id"])
}

func TestNotify_CancelledContextStillStores(t *testing.T) {
	svc, _ := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Notify(ctx, Event{UserID: 7, Type: TypeSessionCancelled, Title: "Cancelled"})

	n, err := svc.UnreadCount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMarkAsRead(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	svc.Notify(ctx, Event{UserID: 7, Type: TypeSessionConfirmed, Title: "Confirmed"})
	svc.Notify(ctx, Event{UserID: 7, Type: TypeSessionCompleted, Title: "Completed"})

	items, _, _, err := svc.List(ctx, 7, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, svc.MarkAsRead(ctx, items[0].ID, 7))
	assert.ErrorIs(t, svc.MarkAsRead(ctx, items[0].ID, 8), ErrNotFound)

	unreadItems, total, unread, err := svc.List(ctx, 7, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), unread)
	assert.Len(t, unreadItems, 1)

	updated, err := svc.MarkAllAsRead(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	n, err := svc.UnreadCount(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCleanup_DeletesOnlyOldReadRows(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	old := fixedNow.Add(-40 * 24 * time.Hour)
	rows := []*Notification{
		{UserID: 7, Type: TypeSessionCompleted, Title: "old read", IsRead: true, CreatedAt: old},
		{UserID: 7, Type: TypeSessionCompleted, Title: "old unread", CreatedAt: old},
		{UserID: 7, Type: TypeSessionCompleted, Title: "fresh read", IsRead: true, CreatedAt: fixedNow.Add(-time.Hour)},
	}
	for _, n := range rows {
		require.NoError(t, repo.Create(ctx, n))
	}

	deleted, err := svc.Cleanup(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	items, total, _, err := svc.List(ctx, 7, false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, n := range items {
		assert.NotEqual(t, "old read", n.Title)
	}
}
