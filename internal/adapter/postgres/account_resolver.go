package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adbridge/internal/errs"
)

// AccountResolver reads the remote ad account link from the users table. No
// default is ever substituted: an owner without a linked account cannot reach
// the platform.
type AccountResolver struct {
	pool *pgxpool.Pool
}

// NewAccountResolver returns a new resolver instance.
func NewAccountResolver(pool *pgxpool.Pool) *AccountResolver {
	return &AccountResolver{pool: pool}
}

// RemoteAccountID returns the owner's linked remote ad account id. A missing
// user row or an empty link both fail closed with errs.ErrUnauthorized.
func (r *AccountResolver) RemoteAccountID(ctx context.Context, ownerID string) (string, error) {
	var accountID string
	err := r.pool.QueryRow(ctx,
		`SELECT remote_account_id FROM users WHERE id=$1`, ownerID).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: owner %s has no profile", errs.ErrUnauthorized, ownerID)
	}
	if err != nil {
		return "", err
	}
	if accountID == "" {
		return "", fmt.Errorf("%w: owner %s has no linked ad account", errs.ErrUnauthorized, ownerID)
	}
	return accountID, nil
}
