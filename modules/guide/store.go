package guide

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guideshare/guideshare/pkg/authz"
	"github.com/guideshare/guideshare/pkg/pg"
)

// ErrGuideNotFound is returned when no guide exists with the given id.
var ErrGuideNotFound = errors.New("guide: not found")

// Store provides the read-only guide projections consumed by the
// authorization predicates.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a guide store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GuideView fetches the authorization view of a guide.
func (s *Store) GuideView(ctx context.Context, id int64) (authz.GuideView, error) {
	var view authz.GuideView
	err := s.pool.QueryRow(ctx,
		`SELECT id, author_id, is_private FROM guides WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.AuthorID, &view.IsPrivate)
	if err != nil {
		if pg.IsNotFound(err) {
			return authz.GuideView{}, ErrGuideNotFound
		}
		return authz.GuideView{}, err
	}
	return view, nil
}

// SharedGuideIDs fetches the set of guide ids shared with a user.
func (s *Store) SharedGuideIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT guide_id FROM guide_shares WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
