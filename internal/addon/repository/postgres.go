package repository

import (
	"context"
	"database/sql"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const addOnColumns = `id, name, description, price, product_id, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.AddOn) error {
	query := `
        INSERT INTO add_ons (id, name, description, price, product_id, created_at, updated_at)
        VALUES (:id, :name, :description, :price, :product_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return errors.Wrap(err, "insert add-on")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.AddOn, error) {
	var a model.AddOn
	query := `SELECT ` + addOnColumns + ` FROM add_ons WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select add-on")
	}
	return &a, nil
}

func (r *PGRepository) FindByProductID(ctx context.Context, productID string) ([]model.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM add_ons WHERE product_id = $1 ORDER BY price ASC, created_at ASC`
	addOns := []model.AddOn{}
	if err := r.DB.SelectContext(ctx, &addOns, query, productID); err != nil {
		return nil, errors.Wrap(err, "select add-ons")
	}
	return addOns, nil
}

func (r *PGRepository) Update(ctx context.Context, a *model.AddOn) error {
	query := `
        UPDATE add_ons
        SET name = :name,
            description = :description,
            price = :price,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return errors.Wrap(err, "update add-on")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM add_ons WHERE id = $1", id)
	return errors.Wrap(err, "delete add-on")
}
