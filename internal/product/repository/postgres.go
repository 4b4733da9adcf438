package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const productColumns = `p.id, p.name, p.description, p.images, p.product_type_id, p.created_at, p.updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, name, description, images, product_type_id, created_at, updated_at)
        VALUES (:id, :name, :description, :images, :product_type_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "insert product")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select product")
	}

	products := []model.Product{p}
	if err := r.hydrate(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// FindAll lists products newest first.
func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f != nil {
		if f.TypeName != "" {
			conditions = append(conditions, "LOWER(pt.name) = LOWER(:type_name)")
			args["type_name"] = f.TypeName
		}
		if f.ProductTypeID != "" {
			conditions = append(conditions, "p.product_type_id = :product_type_id")
			args["product_type_id"] = f.ProductTypeID
		}
		if f.Query != "" {
			conditions = append(conditions, "(p.name ILIKE :search OR p.description ILIKE :search)")
			args["search"] = "%" + escapeLike(f.Query) + "%"
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + productColumns + ` FROM products p JOIN product_types pt ON pt.id = p.product_type_id` +
		whereClause + ` ORDER BY p.created_at DESC`

	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return nil, errors.Wrap(err, "bind product filters")
	}
	query = r.DB.Rebind(query)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, params...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	if err := r.hydrate(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs loads the given products in the order of ids. Unknown ids are skipped.
func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products p WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "bind product ids")
	}
	query = r.DB.Rebind(query)

	var found []model.Product
	if err := r.DB.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, errors.Wrap(err, "select products by id")
	}

	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	products := make([]model.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
			delete(byID, id)
		}
	}

	if err := r.hydrate(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            images = :images,
            product_type_id = :product_type_id,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update product")
}

// Delete removes the product. Its variants and add-ons are removed by the
// ON DELETE CASCADE constraints.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return errors.Wrap(err, "delete product")
}

// hydrate attaches product types, variants and add-ons to products in place
// using one batched query per relation.
func (r *PGRepository) hydrate(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(products))
	typeIDs := make([]string, 0, len(products))
	seenType := map[string]bool{}
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		if !seenType[p.ProductTypeID] {
			seenType[p.ProductTypeID] = true
			typeIDs = append(typeIDs, p.ProductTypeID)
		}
	}

	var types []model.ProductType
	if err := r.selectIn(ctx, &types,
		`SELECT id, name, description, created_at, updated_at FROM product_types WHERE id IN (?)`, typeIDs); err != nil {
		return errors.Wrap(err, "select product types for products")
	}

	var variants []model.Variant
	if err := r.selectIn(ctx, &variants,
		`SELECT id, size, color, price, stock, sku, product_id, created_at, updated_at
         FROM variants WHERE product_id IN (?) ORDER BY price ASC, created_at ASC`, productIDs); err != nil {
		return errors.Wrap(err, "select variants for products")
	}

	var addOns []model.AddOn
	if err := r.selectIn(ctx, &addOns,
		`SELECT id, name, description, price, product_id, created_at, updated_at
         FROM add_ons WHERE product_id IN (?) ORDER BY price ASC, created_at ASC`, productIDs); err != nil {
		return errors.Wrap(err, "select add-ons for products")
	}

	typeByID := make(map[string]*model.ProductType, len(types))
	for i := range types {
		typeByID[types[i].ID] = &types[i]
	}
	variantsByProduct := map[string][]model.Variant{}
	for _, v := range variants {
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], v)
	}
	addOnsByProduct := map[string][]model.AddOn{}
	for _, a := range addOns {
		addOnsByProduct[a.ProductID] = append(addOnsByProduct[a.ProductID], a)
	}

	for i := range products {
		p := &products[i]
		p.ProductType = typeByID[p.ProductTypeID]
		p.Variants = variantsByProduct[p.ID]
		if p.Variants == nil {
			p.Variants = []model.Variant{}
		}
		p.AddOns = addOnsByProduct[p.ID]
		if p.AddOns == nil {
			p.AddOns = []model.AddOn{}
		}
	}
	return nil
}

func (r *PGRepository) selectIn(ctx context.Context, dest interface{}, query string, ids []string) error {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return r.DB.SelectContext(ctx, dest, r.DB.Rebind(query), args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
