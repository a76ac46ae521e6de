// Package auditlogs declares the repository contract for audit records.
package auditlogs

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for the audit trail.
type Repository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.AuditLog, error)
}
