// Package usecase implements the entity services orchestrating validation,
// credential lookup, remote platform calls and the local mirror, in that
// order. Remote failures on best-effort paths are logged and absorbed;
// failures on primary paths propagate as typed errors.
package usecase

import (
	"fmt"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ensureToken fetches the owner's cached platform credential. Absence fails
// the operation immediately; no remote call is ever attempted without one.
func ensureToken(creds port.CredentialSource, ownerID string) (string, error) {
	token, ok := creds.Get(ownerID)
	if !ok {
		return "", fmt.Errorf("%w: no cached platform credential for owner %s", errs.ErrUnauthorized, ownerID)
	}
	return token, nil
}

// normalizePage clamps pagination inputs to sane bounds.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// totalPages computes the page count for an offset listing.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// mergeStatus parses a remote status string, keeping the current value when
// the platform reports something unknown.
func mergeStatus(current domain.Status, remote string) domain.Status {
	if s := domain.Status(remote); s.Valid() {
		return s
	}
	return current
}
