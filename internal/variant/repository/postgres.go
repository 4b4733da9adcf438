package repository

import (
	"context"
	"database/sql"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const variantColumns = `id, size, color, price, stock, sku, product_id, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, v *model.Variant) error {
	query := `
        INSERT INTO variants (id, size, color, price, stock, sku, product_id, created_at, updated_at)
        VALUES (:id, :size, :color, :price, :stock, :sku, :product_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "insert variant")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Variant, error) {
	var v model.Variant
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select variant")
	}
	return &v, nil
}

// FindByProductID lists the variants of a product, cheapest first.
func (r *PGRepository) FindByProductID(ctx context.Context, productID string) ([]model.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE product_id = $1 ORDER BY price ASC, created_at ASC`
	variants := []model.Variant{}
	if err := r.DB.SelectContext(ctx, &variants, query, productID); err != nil {
		return nil, errors.Wrap(err, "select variants")
	}
	return variants, nil
}

func (r *PGRepository) Update(ctx context.Context, v *model.Variant) error {
	query := `
        UPDATE variants
        SET size = :size,
            color = :color,
            price = :price,
            stock = :stock,
            sku = :sku,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "update variant")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM variants WHERE id = $1", id)
	return errors.Wrap(err, "delete variant")
}
