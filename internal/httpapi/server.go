// Package httpapi exposes the REST surface of the server. Handlers are
// thin: they decode JSON, call the service layer, and map sentinel
// errors to status codes. All authenticated routes go through the
// access-token middleware, which attaches the verified principal ID to
// the request context.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/investrack/server/internal/auth"
	"github.com/investrack/server/internal/logging"
	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/services"
)

// SessionService is the part of the session layer the handlers use.
type SessionService interface {
	SignIn(ctx context.Context, usernameOrEmail, password string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	CurrentPrincipal(ctx context.Context) (*models.User, error)
	RecentActivity(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

// UserService is the part of the user layer the handlers use.
type UserService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// RoleService is the part of the role layer the handlers use.
type RoleService interface {
	Create(ctx context.Context, name, description string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// AssetService is the part of the asset catalogue the handlers use.
type AssetService interface {
	Create(ctx context.Context, a *models.Asset) (*models.Asset, error)
	Get(ctx context.Context, id string) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
	UpdatePrice(ctx context.Context, id string, price float64) error
}

// PortfolioService is the part of the portfolio layer the handlers use.
type PortfolioService interface {
	Create(ctx context.Context, userID, name, description string) (*models.Portfolio, error)
	Get(ctx context.Context, userID, id string) (*models.Portfolio, error)
	List(ctx context.Context, userID string) ([]*models.Portfolio, error)
	Update(ctx context.Context, userID, id, name, description string) error
	Delete(ctx context.Context, userID, id string) error
	Holdings(ctx context.Context, userID, portfolioID string) ([]*models.Holding, error)
	Transactions(ctx context.Context, userID, portfolioID string) ([]*models.Transaction, error)
	RecordTransaction(ctx context.Context, userID string, t *models.Transaction) (*models.Transaction, error)
}

type Server struct {
	sessions   SessionService
	users      UserService
	roles      RoleService
	assets     AssetService
	portfolios PortfolioService
	tokens     *auth.JWTManager
	logger     logging.Logger
}

func NewServer(l logging.Logger, ss SessionService, us UserService, rs RoleService, as AssetService, ps PortfolioService, tokens *auth.JWTManager) *Server {
	return &Server{
		sessions:   ss,
		users:      us,
		roles:      rs,
		assets:     as,
		portfolios: ps,
		tokens:     tokens,
		logger:     l.With("module", "httpapi"),
	}
}

// Handler builds the route table. Method-qualified patterns leave 404/405
// handling to the mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/auth/refresh-token", s.handleRefresh)
	mux.HandleFunc("POST /api/auth/signout", s.handleSignOut)
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("GET /api/auth/me/activity", s.requireAuth(s.handleMyActivity))

	mux.HandleFunc("GET /api/users", s.requireAuth(s.handleListUsers))
	mux.HandleFunc("GET /api/users/{id}", s.requireAuth(s.handleGetUser))

	mux.HandleFunc("GET /api/roles", s.requireAuth(s.handleListRoles))
	mux.HandleFunc("POST /api/roles", s.requireAuth(s.handleCreateRole))

	mux.HandleFunc("GET /api/assets", s.requireAuth(s.handleListAssets))
	mux.HandleFunc("POST /api/assets", s.requireAuth(s.handleCreateAsset))
	mux.HandleFunc("GET /api/assets/{id}", s.requireAuth(s.handleGetAsset))
	mux.HandleFunc("PUT /api/assets/{id}/price", s.requireAuth(s.handleUpdateAssetPrice))

	mux.HandleFunc("POST /api/portfolios", s.requireAuth(s.handleCreatePortfolio))
	mux.HandleFunc("GET /api/portfolios", s.requireAuth(s.handleListPortfolios))
	mux.HandleFunc("GET /api/portfolios/{id}", s.requireAuth(s.handleGetPortfolio))
	mux.HandleFunc("PUT /api/portfolios/{id}", s.requireAuth(s.handleUpdatePortfolio))
	mux.HandleFunc("DELETE /api/portfolios/{id}", s.requireAuth(s.handleDeletePortfolio))
	mux.HandleFunc("GET /api/portfolios/{id}/holdings", s.requireAuth(s.handleListHoldings))
	mux.HandleFunc("GET /api/portfolios/{id}/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/portfolios/{id}/transactions", s.requireAuth(s.handleRecordTransaction))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// requireAuth validates the bearer token and attaches the principal ID
// to the request context. The failure cause is logged but never sent to
// the client.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		principalID, err := s.tokens.Validate(token)
		if err != nil {
			s.logger.Debug(r.Context(), "access token rejected", "reason", err)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := services.ContextWithPrincipalID(r.Context(), principalID)
		next(w, r.WithContext(ctx))
	}
}
