// Package repomanager wires repositories to database handles. Services
// obtain a repository bound either to the shared *sql.DB or to a
// transaction started with dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/repositories/assets"
	"github.com/investrack/server/internal/repositories/auditlogs"
	"github.com/investrack/server/internal/repositories/holdings"
	"github.com/investrack/server/internal/repositories/portfolios"
	"github.com/investrack/server/internal/repositories/refreshtokens"
	"github.com/investrack/server/internal/repositories/roles"
	"github.com/investrack/server/internal/repositories/transactions"
	"github.com/investrack/server/internal/repositories/users"
)

// RepositoryManager constructs repositories bound to the given DBTX.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Portfolios(db dbx.DBTX) portfolios.Repository
	Assets(db dbx.DBTX) assets.Repository
	Holdings(db dbx.DBTX) holdings.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	AuditLogs(db dbx.DBTX) auditlogs.Repository
}
