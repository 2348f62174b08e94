package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Revoke puts jti on the denylist until expiresAt. The upsert makes a repeat
// logout with the same token harmless. Expired rows are swept on every write
// so the denylist never grows past the set of still-live revoked tokens.
func (r *tokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	// sweep, self-cleaning denylist
	_, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("ошибка при очистке denylist: %w", err)
	}

	query := `
		INSERT INTO revoked_tokens (jti, expires_at, revoked_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (jti) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`

	_, err = r.db.ExecContext(ctx, query, jti, expiresAt)
	if err != nil {
		return fmt.Errorf("ошибка при отзыве токена: %w", err)
	}

	return nil
}

// IsRevoked treats a row past its expires_at as absent: by then the token is
// rejected by the expiry check anyway, so the entry carries no information.
func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool

	query := `
		SELECT EXISTS (
			SELECT 1 FROM revoked_tokens
			WHERE jti = $1 AND expires_at > CURRENT_TIMESTAMP
		)
	`

	err := r.db.GetContext(ctx, &revoked, query, jti)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке denylist: %w", err)
	}

	return revoked, nil
}
