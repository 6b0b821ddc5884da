package profiles

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appli-farm/applifarm-backend/internal/storage/pg"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `id, email, full_name, avatar_url, bio, website,
       github_url, x_url, linkedin_url, note_url, created_at, updated_at`

func (s *PostgresStore) Ensure(ctx context.Context, in EnsureInput) (*Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	const q = `
insert into profiles (id, email, full_name, avatar_url, updated_at)
values ($1, $2, nullif($3,''), nullif($4,''), now())
on conflict (id) do update
set
  email = excluded.email,
  full_name = coalesce(profiles.full_name, excluded.full_name),
  avatar_url = coalesce(profiles.avatar_url, excluded.avatar_url),
  updated_at = now()
returning ` + profileColumns + `;`

	var p Profile
	err := s.db.QueryRow(ctx, q, in.ID, in.Email, in.FullName, in.AvatarURL).Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Bio, &p.Website,
		&p.GithubURL, &p.XURL, &p.LinkedinURL, &p.NoteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, pg.MapError(err)
	}
	return &p, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Profile, error) {
	const q = `select ` + profileColumns + ` from profiles where id = $1;`

	var p Profile
	err := s.db.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Bio, &p.Website,
		&p.GithubURL, &p.XURL, &p.LinkedinURL, &p.NoteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, pg.MapError(err)
	}
	return &p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *Profile) error {
	const q = `
update profiles
set full_name = $2, avatar_url = $3, bio = $4, website = $5,
    github_url = $6, x_url = $7, linkedin_url = $8, note_url = $9,
    updated_at = now()
where id = $1
returning updated_at;`

	err := s.db.QueryRow(ctx, q,
		p.ID, p.FullName, p.AvatarURL, p.Bio, p.Website,
		p.GithubURL, p.XURL, p.LinkedinURL, p.NoteURL,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return pg.MapError(err)
	}
	return nil
}
