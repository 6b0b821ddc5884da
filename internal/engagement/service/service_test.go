package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/profiles"
	projdomain "github.com/appli-farm/applifarm-backend/internal/projects/domain"
	projservice "github.com/appli-farm/applifarm-backend/internal/projects/service"
	"github.com/appli-farm/applifarm-backend/internal/storage/memory"
)

func setup(t *testing.T) (*memory.DB, *EngagementService, *projdomain.Project) {
	t.Helper()
	db := memory.NewDB()
	ctx := context.Background()

	for _, uid := range []string{"owner", "visitor"} {
		_, err := db.Profiles().Ensure(ctx, profiles.EnsureInput{ID: uid, Email: uid + "@example.com"})
		require.NoError(t, err)
	}

	ps := projservice.NewProjectService(db.Projects(), nil)
	p, err := ps.Create(ctx, "owner", projdomain.Draft{
		Title:       "Todo App",
		Description: "A simple todo",
		URL:         "https://example.com",
		Categories:  []string{"Task Management"},
	})
	require.NoError(t, err)

	return db, NewEngagementService(db.Engagement()), p
}

func TestToggleLikeRoundTrip(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	state, err := svc.ToggleLike(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 1, state.LikesCount)

	liked, err := svc.HasLiked(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	state, err = svc.ToggleLike(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 0, state.LikesCount)

	liked, err = svc.HasLiked(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikeGuards(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "", p.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.ToggleLike(ctx, "visitor", "missing-project")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestHasLikedAnonymous(t *testing.T) {
	_, svc, p := setup(t)

	liked, err := svc.HasLiked(context.Background(), "", p.ID)
	require.NoError(t, err)
	assert.False(t, liked, "anonymous readers simply have not liked anything")
}

func TestConcurrentLikesFromDistinctUsers(t *testing.T) {
	db, svc, p := setup(t)
	ctx := context.Background()

	const n = 32
	for i := 0; i < n; i++ {
		_, err := db.Profiles().Ensure(ctx, profiles.EnsureInput{
			ID:    fmt.Sprintf("fan-%02d", i),
			Email: fmt.Sprintf("fan-%02d@example.com", i),
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			if _, err := svc.ToggleLike(ctx, uid, p.ID); err != nil {
				errs <- err
			}
		}(fmt.Sprintf("fan-%02d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("toggle failed: %v", err)
	}

	got, err := db.Projects().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.LikesCount)
}

func TestLikeThenUnlikeInterleavedWithOthers(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	// visitor likes, owner likes, visitor unlikes; the counter always
	// mirrors the number of live like relations.
	state, err := svc.ToggleLike(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.LikesCount)

	state, err = svc.ToggleLike(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, state.LikesCount)

	state, err = svc.ToggleLike(ctx, "visitor", p.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 1, state.LikesCount)

	ownerLiked, err := svc.HasLiked(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.True(t, ownerLiked, "unliking must not disturb other users' likes")
}

func TestReconcileLikeCounts(t *testing.T) {
	db, svc, p := setup(t)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "visitor", p.ID)
	require.NoError(t, err)

	// Simulate drift, e.g. a counter update lost to a crash.
	db.SetLikesCount(p.ID, 7)

	fixed, err := db.Engagement().ReconcileLikeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	got, err := db.Projects().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	fixed, err = db.Engagement().ReconcileLikeCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed, "a clean ledger needs no fixes")
}

func TestAddComment(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	c, err := svc.AddComment(ctx, "visitor", p.ID, "  great idea  ")
	require.NoError(t, err)
	assert.Equal(t, "great idea", c.Content, "content is stored trimmed")
	assert.Equal(t, "visitor", c.AuthorID)
	assert.Equal(t, p.ID, c.ProjectID)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "", p.ID, "hi")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "visitor", "missing", "hi")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("blank content", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "visitor", p.ID, "   ")
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "content", ve.Field)
	})

	t.Run("content length cap", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "visitor", p.ID, strings.Repeat("あ", 2001))
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "content", ve.Field)

		_, err = svc.AddComment(ctx, "visitor", p.ID, strings.Repeat("あ", 2000))
		assert.NoError(t, err, "the cap counts runes, not bytes")
	})
}

func TestListCommentsNewestFirst(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := svc.AddComment(ctx, "visitor", p.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	got, err := svc.ListComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "comment 3", got[0].Content)
	assert.Equal(t, "comment 2", got[1].Content)
	assert.Equal(t, "comment 1", got[2].Content)
}

func TestDeleteCommentAuthorship(t *testing.T) {
	_, svc, p := setup(t)
	ctx := context.Background()

	c, err := svc.AddComment(ctx, "visitor", p.ID, "delete me later")
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, c.ID, "owner")
	assert.ErrorIs(t, err, apperr.ErrForbidden, "only the author may delete, even the project owner may not")

	err = svc.DeleteComment(ctx, c.ID, "")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	require.NoError(t, svc.DeleteComment(ctx, c.ID, "visitor"))

	err = svc.DeleteComment(ctx, c.ID, "visitor")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.ListComments(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
