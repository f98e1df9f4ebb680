package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babysafety/internal/domain/cryanalysis"
	"babysafety/internal/domain/feedings"
	"babysafety/internal/domain/users"
)

func TestFeedingRepo_OrdersByDateThenTime(t *testing.T) {
	repo := NewFeedingRepo()
	ctx := context.Background()
	now := time.Now()

	for i, e := range []feedings.Entry{
		{ID: "c", BabyID: "b1", Date: "2024-06-05", Time: "11:00", CreatedAt: now},
		{ID: "a", BabyID: "b1", Date: "2024-06-04", Time: "20:00", CreatedAt: now},
		{ID: "b", BabyID: "b1", Date: "2024-06-05", Time: "08:00", CreatedAt: now},
		{ID: "x", BabyID: "b2", Date: "2024-06-05", Time: "09:00", CreatedAt: now},
	} {
		e.CreatedAt = e.CreatedAt.Add(time.Duration(i))
		require.NoError(t, repo.Create(ctx, e))
	}

	items, err := repo.ListByBaby(ctx, "b1")
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, e := range items {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, repo.DeleteByBaby(ctx, "b1"))
	items, err = repo.ListByBaby(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.GetByID(ctx, "x")
	assert.NoError(t, err)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), feedings.ErrNotFound)
}

func TestUserRepo_Uniqueness(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, users.User{ID: "1", Username: "ana", Email: "ana@x.com"}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "2", Username: "ana", Email: "b@x.com"}), users.ErrUsernameTaken)
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "3", Username: "bea", Email: "ana@x.com"}), users.ErrEmailInUse)

	u, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = repo.GetByID(ctx, "2")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestCryRepo_FrontInserts(t *testing.T) {
	repo := NewCryAnalysisRepo()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, cryanalysis.Analysis{ID: "1", BabyID: "b1"}))
	require.NoError(t, repo.Add(ctx, cryanalysis.Analysis{ID: "2", BabyID: "b1"}))

	items, err := repo.ListByBaby(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ID)

	// la copia devuelta no comparte backing array
	items[0].ID = "mutated"
	again, _ := repo.ListByBaby(ctx, "b1")
	assert.Equal(t, "2", again[0].ID)
}
