// Package memory implements the profile, project and engagement stores on
// process-local maps. It backs unit tests and local development without a
// database; a single mutex plays the role the Postgres transaction plays in
// the production stores, so the like counter and the like relations can
// never be observed out of sync here either.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	engdomain "github.com/appli-farm/applifarm-backend/internal/engagement/domain"
	engstore "github.com/appli-farm/applifarm-backend/internal/engagement/store"
	"github.com/appli-farm/applifarm-backend/internal/profiles"
	projdomain "github.com/appli-farm/applifarm-backend/internal/projects/domain"
	projstore "github.com/appli-farm/applifarm-backend/internal/projects/store"
)

var (
	_ profiles.Store  = (*ProfileStore)(nil)
	_ projstore.Store = (*ProjectStore)(nil)
	_ engstore.Store  = (*EngagementStore)(nil)
)

type likeKey struct {
	userID    string
	projectID string
}

type projectRecord struct {
	projdomain.Project
	seq uint64
}

type commentRecord struct {
	engdomain.Comment
	seq uint64
}

// DB is the shared state behind the three store views. Cascade deletion
// works because likes and comments live next to the projects they reference.
type DB struct {
	mu       sync.Mutex
	seq      uint64
	profiles map[string]*profiles.Profile
	projects map[string]*projectRecord
	likes    map[likeKey]time.Time
	comments map[string]*commentRecord
}

func NewDB() *DB {
	return &DB{
		profiles: make(map[string]*profiles.Profile),
		projects: make(map[string]*projectRecord),
		likes:    make(map[likeKey]time.Time),
		comments: make(map[string]*commentRecord),
	}
}

func (db *DB) Profiles() *ProfileStore { return &ProfileStore{db: db} }
func (db *DB) Projects() *ProjectStore { return &ProjectStore{db: db} }
func (db *DB) Engagement() *EngagementStore { return &EngagementStore{db: db} }

func (db *DB) nextSeq() uint64 {
	db.seq++
	return db.seq
}

// SetLikesCount overwrites a project's counter directly, bypassing the
// toggle path. Test helper for exercising reconciliation.
func (db *DB) SetLikesCount(projectID string, n int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if rec, ok := db.projects[projectID]; ok {
		rec.LikesCount = n
	}
}

// ProfileStore implements profiles.Store.
type ProfileStore struct {
	db *DB
}

func (s *ProfileStore) Ensure(_ context.Context, in profiles.EnsureInput) (*profiles.Profile, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, apperr.Validation("id", "identity is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperr.Validation("email", "email is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now()
	p, ok := s.db.profiles[in.ID]
	if !ok {
		p = &profiles.Profile{ID: in.ID, CreatedAt: now}
		s.db.profiles[in.ID] = p
	}
	p.Email = in.Email
	if p.FullName == nil && in.FullName != "" {
		name := in.FullName
		p.FullName = &name
	}
	if p.AvatarURL == nil && in.AvatarURL != "" {
		avatar := in.AvatarURL
		p.AvatarURL = &avatar
	}
	p.UpdatedAt = now

	cp := *p
	return &cp, nil
}

func (s *ProfileStore) Get(_ context.Context, id string) (*profiles.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.profiles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProfileStore) Update(_ context.Context, p *profiles.Profile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.profiles[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	s.db.profiles[p.ID] = &cp
	return nil
}

// ProjectStore implements the projects store interface.
type ProjectStore struct {
	db *DB
}

func (s *ProjectStore) Create(_ context.Context, ownerID string, d projdomain.Draft) (*projdomain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.profiles[ownerID]; !ok {
		return nil, apperr.ErrForbidden
	}

	now := time.Now()
	rec := &projectRecord{
		Project: projdomain.Project{
			ID:              uuid.New().String(),
			OwnerID:         ownerID,
			Title:           d.Title,
			Description:     d.Description,
			URL:             d.URL,
			ImageURL:        d.ImageURL,
			Categories:      cloneOrEmpty(d.Categories),
			Tags:            cloneOrEmpty(d.Tags),
			AITools:         cloneOrEmpty(d.AITools),
			BackendServices: cloneOrEmpty(d.BackendServices),
			FrontendTools:   cloneOrEmpty(d.FrontendTools),
			LikesCount:      0,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		seq: s.db.nextSeq(),
	}
	s.db.projects[rec.ID] = rec

	cp := rec.Project
	return &cp, nil
}

func (s *ProjectStore) Get(_ context.Context, id string) (*projdomain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.projects[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := rec.Project
	return &cp, nil
}

func (s *ProjectStore) Update(_ context.Context, p *projdomain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.projects[p.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	// LikesCount is owned by the engagement paths; keep the stored value.
	p.LikesCount = rec.LikesCount
	rec.Project = *p
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.projects[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.db.projects, id)

	// Cascade, same as the foreign keys do in Postgres.
	for k := range s.db.likes {
		if k.projectID == id {
			delete(s.db.likes, k)
		}
	}
	for cid, c := range s.db.comments {
		if c.ProjectID == id {
			delete(s.db.comments, cid)
		}
	}
	return nil
}

func (s *ProjectStore) Search(_ context.Context, f projdomain.Filter) ([]projdomain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	text := strings.ToLower(f.Text)

	recs := make([]*projectRecord, 0, len(s.db.projects))
	for _, rec := range s.db.projects {
		if f.Category != "" && !containsString(rec.Categories, f.Category) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(rec.Title), text) &&
			!strings.Contains(strings.ToLower(rec.Description), text) {
			continue
		}
		recs = append(recs, rec)
	}
	sortNewestFirst(recs)

	out := make([]projdomain.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Project)
	}
	return out, nil
}

func (s *ProjectStore) ListByOwner(_ context.Context, ownerID string) ([]projdomain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	recs := make([]*projectRecord, 0, 8)
	for _, rec := range s.db.projects {
		if rec.OwnerID == ownerID {
			recs = append(recs, rec)
		}
	}
	sortNewestFirst(recs)

	out := make([]projdomain.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Project)
	}
	return out, nil
}

func (s *ProjectStore) CategoryFacets(_ context.Context) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	seen := make(map[string]struct{})
	for _, rec := range s.db.projects {
		for _, cat := range rec.Categories {
			seen[cat] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out, nil
}

// EngagementStore implements the engagement store interface.
type EngagementStore struct {
	db *DB
}

func (s *EngagementStore) ToggleLike(_ context.Context, userID, projectID string) (engdomain.LikeState, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var state engdomain.LikeState

	rec, ok := s.db.projects[projectID]
	if !ok {
		return state, apperr.ErrNotFound
	}

	key := likeKey{userID: userID, projectID: projectID}
	if _, liked := s.db.likes[key]; liked {
		delete(s.db.likes, key)
		if rec.LikesCount > 0 {
			rec.LikesCount--
		}
		state.Liked = false
	} else {
		s.db.likes[key] = time.Now()
		rec.LikesCount++
		state.Liked = true
	}
	state.LikesCount = rec.LikesCount
	return state, nil
}

func (s *EngagementStore) HasLiked(_ context.Context, userID, projectID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, liked := s.db.likes[likeKey{userID: userID, projectID: projectID}]
	return liked, nil
}

func (s *EngagementStore) AddComment(_ context.Context, authorID, projectID, content string) (*engdomain.CommentWithAuthor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.projects[projectID]; !ok {
		return nil, apperr.ErrNotFound
	}
	author, ok := s.db.profiles[authorID]
	if !ok {
		return nil, apperr.ErrForbidden
	}

	now := time.Now()
	rec := &commentRecord{
		Comment: engdomain.Comment{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			AuthorID:  authorID,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.db.nextSeq(),
	}
	s.db.comments[rec.ID] = rec

	return &engdomain.CommentWithAuthor{
		Comment:         rec.Comment,
		AuthorName:      author.FullName,
		AuthorAvatarURL: author.AvatarURL,
	}, nil
}

func (s *EngagementStore) GetComment(_ context.Context, id string) (*engdomain.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.comments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := rec.Comment
	return &cp, nil
}

func (s *EngagementStore) DeleteComment(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.comments[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.db.comments, id)
	return nil
}

func (s *EngagementStore) ListComments(_ context.Context, projectID string) ([]engdomain.CommentWithAuthor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	recs := make([]*commentRecord, 0, 8)
	for _, rec := range s.db.comments {
		if rec.ProjectID == projectID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	out := make([]engdomain.CommentWithAuthor, 0, len(recs))
	for _, rec := range recs {
		cwa := engdomain.CommentWithAuthor{Comment: rec.Comment}
		if author, ok := s.db.profiles[rec.AuthorID]; ok {
			cwa.AuthorName = author.FullName
			cwa.AuthorAvatarURL = author.AvatarURL
		}
		out = append(out, cwa)
	}
	return out, nil
}

func (s *EngagementStore) ReconcileLikeCounts(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	actual := make(map[string]int)
	for k := range s.db.likes {
		actual[k.projectID]++
	}

	var fixed int64
	for id, rec := range s.db.projects {
		if rec.LikesCount != actual[id] {
			rec.LikesCount = actual[id]
			fixed++
		}
	}
	return fixed, nil
}

func sortNewestFirst(recs []*projectRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

func containsString(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

func cloneOrEmpty(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
