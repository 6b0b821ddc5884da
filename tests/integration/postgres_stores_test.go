// Postgres-backed store tests. They run only when TEST_DB_DSN points at a
// database with migrations/schema.sql applied, e.g.
//
//	TEST_DB_DSN=postgres://localhost:5432/applifarm_test go test ./tests/integration/...
package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	engstore "github.com/appli-farm/applifarm-backend/internal/engagement/store"
	"github.com/appli-farm/applifarm-backend/internal/profiles"
	projdomain "github.com/appli-farm/applifarm-backend/internal/projects/domain"
	projstore "github.com/appli-farm/applifarm-backend/internal/projects/store"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping Postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func seedProfile(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := "it-" + uuid.New().String()
	store := profiles.NewPostgresStore(pool)
	_, err := store.Ensure(context.Background(), profiles.EnsureInput{
		ID:    id,
		Email: id + "@example.com",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		// Cascades through projects, likes and comments.
		_, _ = pool.Exec(context.Background(), `delete from profiles where id = $1`, id)
	})
	return id
}

func seedProject(t *testing.T, pool *pgxpool.Pool, ownerID string) *projdomain.Project {
	t.Helper()

	p, err := projstore.NewPostgresStore(pool).Create(context.Background(), ownerID, projdomain.Draft{
		Title:       "Integration Todo",
		Description: "created by the integration suite",
		URL:         "https://example.com",
		Categories:  []string{"Task Management"},
	})
	require.NoError(t, err)
	return p
}

func TestProjectStorePostgres(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	store := projstore.NewPostgresStore(pool)

	owner := seedProfile(t, pool)
	p := seedProject(t, pool, owner)

	t.Run("round trip", func(t *testing.T) {
		got, err := store.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, owner, got.OwnerID)
		assert.Equal(t, 0, got.LikesCount)
		assert.Equal(t, []string{"Task Management"}, got.Categories)
	})

	t.Run("create with unknown owner is forbidden", func(t *testing.T) {
		_, err := store.Create(ctx, "no-such-profile", projdomain.Draft{
			Title:       "Orphan",
			Description: "d",
			URL:         "https://example.com",
			Categories:  []string{"Task Management"},
		})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("search by category and text", func(t *testing.T) {
		got, err := store.Search(ctx, projdomain.Filter{Category: "Task Management", Text: "integration"})
		require.NoError(t, err)
		found := false
		for _, item := range got {
			if item.ID == p.ID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("ilike wildcards are escaped", func(t *testing.T) {
		got, err := store.Search(ctx, projdomain.Filter{Text: "%"})
		require.NoError(t, err)
		for _, item := range got {
			assert.Contains(t, item.Title+item.Description, "%")
		}
	})

	t.Run("delete then not found", func(t *testing.T) {
		victim := seedProject(t, pool, owner)
		require.NoError(t, store.Delete(ctx, victim.ID))

		_, err := store.Get(ctx, victim.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, victim.ID), apperr.ErrNotFound)
	})
}

func TestEngagementStorePostgres(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	store := engstore.NewPostgresStore(pool)

	owner := seedProfile(t, pool)
	p := seedProject(t, pool, owner)

	t.Run("toggle round trip keeps counter and relation in sync", func(t *testing.T) {
		fan := seedProfile(t, pool)

		state, err := store.ToggleLike(ctx, fan, p.ID)
		require.NoError(t, err)
		assert.True(t, state.Liked)
		assert.Equal(t, 1, state.LikesCount)

		liked, err := store.HasLiked(ctx, fan, p.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		state, err = store.ToggleLike(ctx, fan, p.ID)
		require.NoError(t, err)
		assert.False(t, state.Liked)
		assert.Equal(t, 0, state.LikesCount)
	})

	t.Run("like on missing project is not found", func(t *testing.T) {
		fan := seedProfile(t, pool)
		_, err := store.ToggleLike(ctx, fan, uuid.New().String())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("concurrent likes by distinct users all land", func(t *testing.T) {
		target := seedProject(t, pool, owner)

		const n = 8
		fans := make([]string, n)
		for i := range fans {
			fans[i] = seedProfile(t, pool)
		}

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for _, fan := range fans {
			wg.Add(1)
			go func(uid string) {
				defer wg.Done()
				if _, err := store.ToggleLike(ctx, uid, target.ID); err != nil {
					errs <- fmt.Errorf("toggle %s: %w", uid, err)
				}
			}(fan)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Error(err)
		}

		got, err := projstore.NewPostgresStore(pool).Get(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, n, got.LikesCount)
	})

	t.Run("reconciliation repairs drift", func(t *testing.T) {
		target := seedProject(t, pool, owner)
		fan := seedProfile(t, pool)

		_, err := store.ToggleLike(ctx, fan, target.ID)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `update projects set likes_count = 99 where id = $1`, target.ID)
		require.NoError(t, err)

		fixed, err := store.ReconcileLikeCounts(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fixed, int64(1))

		got, err := projstore.NewPostgresStore(pool).Get(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
	})

	t.Run("comments carry author info", func(t *testing.T) {
		commenter := seedProfile(t, pool)

		c, err := store.AddComment(ctx, commenter, p.ID, "works on my machine")
		require.NoError(t, err)
		assert.Equal(t, commenter, c.AuthorID)

		list, err := store.ListComments(ctx, p.ID)
		require.NoError(t, err)
		require.NotEmpty(t, list)
		assert.Equal(t, c.ID, list[0].ID, "newest first")

		require.NoError(t, store.DeleteComment(ctx, c.ID))
		assert.ErrorIs(t, store.DeleteComment(ctx, c.ID), apperr.ErrNotFound)
	})

	t.Run("comment on missing project is not found", func(t *testing.T) {
		commenter := seedProfile(t, pool)
		_, err := store.AddComment(ctx, commenter, uuid.New().String(), "hello?")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
