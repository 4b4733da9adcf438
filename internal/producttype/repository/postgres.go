package repository

import (
	"context"
	"database/sql"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, pt *model.ProductType) error {
	query := `
        INSERT INTO product_types (id, name, description, created_at, updated_at)
        VALUES (:id, :name, :description, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, pt)
	return errors.Wrap(err, "insert product type")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.ProductType, error) {
	var pt model.ProductType
	query := `SELECT id, name, description, created_at, updated_at FROM product_types WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &pt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select product type")
	}
	return &pt, nil
}

// FindAll lists every product type, newest first, with its product count.
func (r *PGRepository) FindAll(ctx context.Context) ([]model.ProductType, error) {
	query := `
        SELECT pt.id, pt.name, pt.description, pt.created_at, pt.updated_at,
               (SELECT COUNT(*) FROM products p WHERE p.product_type_id = pt.id) AS product_count
        FROM product_types pt
        ORDER BY pt.created_at DESC
    `
	types := []model.ProductType{}
	if err := r.DB.SelectContext(ctx, &types, query); err != nil {
		return nil, errors.Wrap(err, "select product types")
	}
	return types, nil
}

func (r *PGRepository) Update(ctx context.Context, pt *model.ProductType) error {
	query := `
        UPDATE product_types
        SET name = :name,
            description = :description,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, pt)
	return errors.Wrap(err, "update product type")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM product_types WHERE id = $1", id)
	return errors.Wrap(err, "delete product type")
}
