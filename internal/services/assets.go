package services

import (
	"context"
	"database/sql"

	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// AssetService provides asset catalogue operations. Assets are shared
// across users; only prices change after creation.
type AssetService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewAssetService(db *sql.DB, repos repomanager.RepositoryManager) *AssetService {
	return &AssetService{db: db, repos: repos}
}

// Create inserts a new asset with a unique symbol.
func (s *AssetService) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	a.Active = true
	return s.repos.Assets(s.db).Create(ctx, a)
}

// Get returns the asset with the given ID.
func (s *AssetService) Get(ctx context.Context, id string) (*models.Asset, error) {
	return s.repos.Assets(s.db).GetByID(ctx, id)
}

// GetBySymbol returns the asset with the given symbol.
func (s *AssetService) GetBySymbol(ctx context.Context, symbol string) (*models.Asset, error) {
	return s.repos.Assets(s.db).GetBySymbol(ctx, symbol)
}

// List returns the full asset catalogue.
func (s *AssetService) List(ctx context.Context) ([]*models.Asset, error) {
	return s.repos.Assets(s.db).List(ctx)
}

// UpdatePrice stores a new current price for the asset.
func (s *AssetService) UpdatePrice(ctx context.Context, id string, price float64) error {
	return s.repos.Assets(s.db).UpdatePrice(ctx, id, price)
}
