package oauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/log"
)

const (
	createTokensTable = `CREATE TABLE IF NOT EXISTS oauth_tokens (
	id TEXT PRIMARY KEY,
	access_token TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	expires_at BIGINT NOT NULL
)`
	selectTokens = `SELECT access_token, refresh_token, expires_at FROM oauth_tokens WHERE id = $1`
	upsertTokens = `INSERT INTO oauth_tokens (id, access_token, refresh_token, expires_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET access_token = excluded.access_token, refresh_token = excluded.refresh_token, expires_at = excluded.expires_at`
)

var errEmptyTokenID = errors.New("token id cannot be empty")

// SQLPersister stores tokens in the oauth_tokens table keyed by id. The
// statements are valid for both sqlite3 and postgres.
type SQLPersister struct {
	db *sql.DB
	id string
}

// NewSQLPersister creates the token table if needed and returns a persister
// for the row identified by id
func NewSQLPersister(ctx context.Context, db *sql.DB, id string) (*SQLPersister, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database", common.ErrNilPointer)
	}
	if id == "" {
		return nil, errEmptyTokenID
	}
	if _, err := db.ExecContext(ctx, createTokensTable); err != nil {
		return nil, fmt.Errorf("cannot create oauth_tokens table: %w", err)
	}
	return &SQLPersister{db: db, id: id}, nil
}

// Load reads the token row
func (s *SQLPersister) Load(ctx context.Context) (Tokens, error) {
	var (
		t       Tokens
		expires int64
	)
	err := s.db.QueryRowContext(ctx, selectTokens, s.id).Scan(&t.AccessToken, &t.RefreshToken, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tokens{}, fmt.Errorf("%w: %s", ErrNoTokens, s.id)
		}
		return Tokens{}, err
	}
	t.ExpiresAt = time.Unix(expires, 0)
	return t, nil
}

// Save upserts the token row
func (s *SQLPersister) Save(ctx context.Context, t Tokens) error {
	_, err := s.db.ExecContext(ctx, upsertTokens, s.id, t.AccessToken, t.RefreshToken, t.ExpiresAt.Unix())
	if err != nil {
		return err
	}
	log.Debugf(log.DatabaseMgr, "saved oauth tokens for %s", s.id)
	return nil
}
