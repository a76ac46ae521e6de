package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const assetColumns = `id, symbol, name, type, currency, current_price, price_updated_at, exchange, active, created_at`

func (r *PostgresRepository) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	query := `
		INSERT INTO assets (symbol, name, type, currency, current_price, exchange, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.Symbol, a.Name, a.Type, a.Currency, a.CurrentPrice, a.Exchange, a.Active,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
}

func (r *PostgresRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Asset, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE symbol = $1`, symbol)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Asset, error) {
	a := &models.Asset{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Symbol, &a.Name, &a.Type, &a.Currency,
		&a.CurrentPrice, &a.PriceUpdatedAt, &a.Exchange, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Asset
	for rows.Next() {
		a := &models.Asset{}
		if err := rows.Scan(
			&a.ID, &a.Symbol, &a.Name, &a.Type, &a.Currency,
			&a.CurrentPrice, &a.PriceUpdatedAt, &a.Exchange, &a.Active, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	query := `
		UPDATE assets
		SET current_price = $2, price_updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
