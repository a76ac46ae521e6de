package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
	assetsrepo "github.com/investrack/server/internal/repositories/assets"
	auditlogsrepo "github.com/investrack/server/internal/repositories/auditlogs"
	holdingsrepo "github.com/investrack/server/internal/repositories/holdings"
	portfoliosrepo "github.com/investrack/server/internal/repositories/portfolios"
	refreshtokensrepo "github.com/investrack/server/internal/repositories/refreshtokens"
	rolesrepo "github.com/investrack/server/internal/repositories/roles"
	transactionsrepo "github.com/investrack/server/internal/repositories/transactions"
	usersrepo "github.com/investrack/server/internal/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectTxs(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

// --- users ---

type fakeUsersRepo struct {
	mu         sync.Mutex
	byID       map[string]*models.User
	byLogin    map[string]*models.User
	lastLogins map[string]time.Time
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{
		byID:       make(map[string]*models.User),
		byLogin:    make(map[string]*models.User),
		lastLogins: make(map[string]time.Time),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byLogin[u.Username] = u
		f.byLogin[u.Email] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byLogin[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	f.byID[u.ID] = u
	f.byLogin[u.Username] = u
	f.byLogin[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byLogin[login]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogins[id] = at
	return nil
}

func (f *fakeUsersRepo) AssignRole(ctx context.Context, userID, roleID string) error { return nil }

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) { return nil, nil }

// --- refresh tokens ---

// fakeRefreshRepo keeps rows in memory with the same semantics the
// postgres store guarantees: one row per user, lookup by token string.
type fakeRefreshRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{byToken: make(map[string]*models.RefreshToken)}
}

func (f *fakeRefreshRepo) Replace(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for t, row := range f.byToken {
		if row.UserID == userID {
			delete(f.byToken, t)
		}
	}
	f.byToken[token] = &models.RefreshToken{
		ID:      uuid.NewString(),
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.byToken[token]; ok {
		return row, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRefreshRepo) DeleteByToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byToken, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	now := time.Now()
	for t, row := range f.byToken {
		if row.Expires.Before(now) {
			delete(f.byToken, t)
			n++
		}
	}
	return n, nil
}

func (f *fakeRefreshRepo) countForUser(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, row := range f.byToken {
		if row.UserID == userID {
			n++
		}
	}
	return n
}

// --- audit logs ---

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AuditLog, error) {
	return nil, nil
}

// --- roles ---

type fakeRolesRepo struct {
	byName map[string]*models.Role
}

func (f *fakeRolesRepo) Create(ctx context.Context, role *models.Role) (*models.Role, error) {
	return role, nil
}

func (f *fakeRolesRepo) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRolesRepo) List(ctx context.Context) ([]*models.Role, error) { return nil, nil }

// --- manager ---

type fakeRepoManager struct {
	users   *fakeUsersRepo
	refresh *fakeRefreshRepo
	audit   *fakeAuditRepo
	roles   *fakeRolesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) Roles(db dbx.DBTX) rolesrepo.Repository { return m.roles }

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refresh
}

func (m *fakeRepoManager) Portfolios(db dbx.DBTX) portfoliosrepo.Repository { return nil }

func (m *fakeRepoManager) Assets(db dbx.DBTX) assetsrepo.Repository { return nil }

func (m *fakeRepoManager) Holdings(db dbx.DBTX) holdingsrepo.Repository { return nil }

func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository { return nil }

func (m *fakeRepoManager) AuditLogs(db dbx.DBTX) auditlogsrepo.Repository { return m.audit }

// --- credential verifier ---

type fakeVerifier struct {
	identity string
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, usernameOrEmail, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.identity, nil
}
