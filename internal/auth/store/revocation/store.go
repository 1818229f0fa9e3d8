// Package revocation tracks access tokens invalidated before their natural
// expiry (logout). Entries only need to live as long as the token would.
package revocation

import (
	"context"
	"time"
)

// Store is the token revocation list.
type Store interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
