package sessions

import (
	"context"
	"errors"
)

// TokenStore maps opaque session tokens to user ids. Tokens are minted at
// login/register and destroyed at logout.
type TokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)

	Resolve(ctx context.Context, token string) (string, error)

	Revoke(ctx context.Context, token string) error

	RevokeAll(ctx context.Context, userID string) error
}

var ErrTokenNotFound = errors.New("session token not found")
