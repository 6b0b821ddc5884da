package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/projects/domain"
	"github.com/appli-farm/applifarm-backend/internal/storage/pg"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const projectColumns = `id, user_id, title, description, url, image_url,
       categories, tags,
       coalesce(ai_tools, '{}'), coalesce(backend_services, '{}'), coalesce(frontend_tools, '{}'),
       likes_count, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, ownerID string, d domain.Draft) (*domain.Project, error) {
	const q = `
insert into projects
  (id, user_id, title, description, url, image_url, categories, tags,
   ai_tools, backend_services, frontend_tools)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning ` + projectColumns + `;`

	p, err := scanProject(s.db.QueryRow(ctx, q,
		uuid.New().String(), ownerID, d.Title, d.Description, d.URL, d.ImageURL,
		orEmpty(d.Categories), orEmpty(d.Tags),
		orEmpty(d.AITools), orEmpty(d.BackendServices), orEmpty(d.FrontendTools),
	))
	if err != nil {
		return nil, pg.MapError(err)
	}
	return p, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1;`

	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, pg.MapError(err)
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *domain.Project) error {
	const q = `
update projects
set title = $2, description = $3, url = $4, image_url = $5,
    categories = $6, tags = $7,
    ai_tools = $8, backend_services = $9, frontend_tools = $10,
    updated_at = now()
where id = $1
returning updated_at;`

	err := s.db.QueryRow(ctx, q,
		p.ID, p.Title, p.Description, p.URL, p.ImageURL,
		orEmpty(p.Categories), orEmpty(p.Tags),
		orEmpty(p.AITools), orEmpty(p.BackendServices), orEmpty(p.FrontendTools),
	).Scan(&p.UpdatedAt)
	if err != nil {
		return pg.MapError(err)
	}
	return nil
}

// Delete removes the project row; likes and comments go with it via
// ON DELETE CASCADE.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `delete from projects where id = $1;`, id)
	if err != nil {
		return pg.MapError(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	q := `select ` + projectColumns + ` from projects`

	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("categories @> array[$%d]::text[]", len(args)))
	}
	if f.Text != "" {
		args = append(args, "%"+escapeLike(f.Text)+"%")
		conds = append(conds, fmt.Sprintf(`(title ilike $%d escape '\' or description ilike $%d escape '\')`, len(args), len(args)))
	}
	if len(conds) > 0 {
		q += " where " + strings.Join(conds, " and ")
	}
	q += " order by created_at desc;"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, pg.MapError(err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, pg.MapError(err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.MapError(err)
	}
	return out, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects
where user_id = $1
order by created_at desc;`

	rows, err := s.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, pg.MapError(err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 8)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, pg.MapError(err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.MapError(err)
	}
	return out, nil
}

func (s *PostgresStore) CategoryFacets(ctx context.Context) ([]string, error) {
	const q = `select distinct unnest(categories) as category from projects order by category;`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, pg.MapError(err)
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, pg.MapError(err)
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.MapError(err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.URL, &p.ImageURL,
		&p.Categories, &p.Tags,
		&p.AITools, &p.BackendServices, &p.FrontendTools,
		&p.LikesCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

// escapeLike neutralizes LIKE metacharacters so the filter stays a plain
// substring match.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
