// Package refreshtokens declares the repository contract for the refresh
// token store used by the session layer.
package refreshtokens

import (
	"context"
	"time"

	"github.com/investrack/server/internal/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens. The store owns the rows; callers hold only transient
// copies.
type Repository interface {
	// Replace stores a new refresh token for userID with an expiry of
	// now+validity, removing any previous token for the same user. Run it
	// on a transactional DBTX so concurrent callers observe the delete
	// and insert as a single unit.
	Replace(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string.
	// Returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteByToken removes a refresh token by its token string.
	// Deleting a non-existent token is not an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes every token whose expiry has passed and
	// reports how many rows were purged.
	DeleteExpired(ctx context.Context) (int64, error)
}
