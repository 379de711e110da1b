package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	repo := NewNotificationRepo(db)

	id, err := repo.Create(ctx, Notification{
		Title:   "Parcela vence amanhã",
		Message: "Notebook 3/10 vence em 10/09",
		Date:    day("2026-09-09"),
		Kind:    "due_date",
	})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].Read)

	require.NoError(t, repo.MarkRead(ctx, id))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.True(t, list[0].Read)

	// Marking a missing id is a no-op.
	require.NoError(t, repo.MarkRead(ctx, 999))

	require.NoError(t, repo.Delete(ctx, id))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestNotificationRequiresTitle(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	repo := NewNotificationRepo(db)

	_, err := repo.Create(ctx, Notification{Title: "", Date: day("2026-09-09")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
