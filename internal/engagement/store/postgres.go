package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/engagement/domain"
	"github.com/appli-farm/applifarm-backend/internal/storage/pg"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// ToggleLike runs the existence flip and the counter adjustment in a single
// transaction. The UPDATE on the project row takes a row lock, so concurrent
// toggles on the same project serialize; the unique (user_id, project_id)
// index makes concurrent toggles by the same user resolve to exactly one
// winner, the loser surfacing ErrConflict.
func (s *PostgresStore) ToggleLike(ctx context.Context, userID, projectID string) (domain.LikeState, error) {
	var state domain.LikeState

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return state, pg.MapError(err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`delete from likes where user_id = $1 and project_id = $2;`,
		userID, projectID)
	if err != nil {
		return state, pg.MapError(err)
	}

	if ct.RowsAffected() > 0 {
		err = tx.QueryRow(ctx,
			`update projects set likes_count = greatest(likes_count - 1, 0)
			 where id = $1 returning likes_count;`,
			projectID).Scan(&state.LikesCount)
		if err != nil {
			return state, pg.MapError(err)
		}
		state.Liked = false
	} else {
		ct, err = tx.Exec(ctx,
			`insert into likes (user_id, project_id) values ($1, $2)
			 on conflict (user_id, project_id) do nothing;`,
			userID, projectID)
		if err != nil {
			return state, pg.MapError(err)
		}
		if ct.RowsAffected() == 0 {
			// A concurrent toggle by the same user got there first.
			return state, apperr.ErrConflict
		}
		err = tx.QueryRow(ctx,
			`update projects set likes_count = likes_count + 1
			 where id = $1 returning likes_count;`,
			projectID).Scan(&state.LikesCount)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return state, apperr.ErrNotFound
			}
			return state, pg.MapError(err)
		}
		state.Liked = true
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.LikeState{}, pg.MapError(err)
	}
	return state, nil
}

func (s *PostgresStore) HasLiked(ctx context.Context, userID, projectID string) (bool, error) {
	const q = `select exists (
  select 1 from likes where user_id = $1 and project_id = $2
);`

	var liked bool
	if err := s.db.QueryRow(ctx, q, userID, projectID).Scan(&liked); err != nil {
		return false, pg.MapError(err)
	}
	return liked, nil
}

func (s *PostgresStore) AddComment(ctx context.Context, authorID, projectID, content string) (*domain.CommentWithAuthor, error) {
	const q = `
with inserted as (
  insert into comments (id, project_id, user_id, content)
  values ($1, $2, $3, $4)
  returning id, project_id, user_id, content, created_at, updated_at
)
select i.id, i.project_id, i.user_id, i.content, i.created_at, i.updated_at,
       p.full_name, p.avatar_url
from inserted i
join profiles p on p.id = i.user_id;`

	var cwa domain.CommentWithAuthor
	err := s.db.QueryRow(ctx, q, uuid.New().String(), projectID, authorID, content).Scan(
		&cwa.ID, &cwa.ProjectID, &cwa.AuthorID, &cwa.Content,
		&cwa.CreatedAt, &cwa.UpdatedAt,
		&cwa.AuthorName, &cwa.AuthorAvatarURL,
	)
	if err != nil {
		return nil, pg.MapError(err)
	}
	return &cwa, nil
}

func (s *PostgresStore) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	const q = `
select id, project_id, user_id, content, created_at, updated_at
from comments where id = $1;`

	var c domain.Comment
	err := s.db.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.ProjectID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, pg.MapError(err)
	}
	return &c, nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `delete from comments where id = $1;`, id)
	if err != nil {
		return pg.MapError(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListComments(ctx context.Context, projectID string) ([]domain.CommentWithAuthor, error) {
	const q = `
select c.id, c.project_id, c.user_id, c.content, c.created_at, c.updated_at,
       p.full_name, p.avatar_url
from comments c
join profiles p on p.id = c.user_id
where c.project_id = $1
order by c.created_at desc, c.id desc;`

	rows, err := s.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, pg.MapError(err)
	}
	defer rows.Close()

	out := make([]domain.CommentWithAuthor, 0, 16)
	for rows.Next() {
		var cwa domain.CommentWithAuthor
		err := rows.Scan(
			&cwa.ID, &cwa.ProjectID, &cwa.AuthorID, &cwa.Content,
			&cwa.CreatedAt, &cwa.UpdatedAt,
			&cwa.AuthorName, &cwa.AuthorAvatarURL,
		)
		if err != nil {
			return nil, pg.MapError(err)
		}
		out = append(out, cwa)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.MapError(err)
	}
	return out, nil
}

func (s *PostgresStore) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	const q = `
update projects p
set likes_count = coalesce(l.n, 0)
from projects p2
left join (
  select project_id, count(*)::int as n from likes group by project_id
) l on l.project_id = p2.id
where p.id = p2.id
  and p.likes_count is distinct from coalesce(l.n, 0);`

	ct, err := s.db.Exec(ctx, q)
	if err != nil {
		return 0, pg.MapError(err)
	}
	return ct.RowsAffected(), nil
}
