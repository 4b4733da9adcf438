// Package catalogtest provides in-memory repositories for tests. They follow
// the Postgres schema: unique names and SKUs, restricted product type
// deletes and cascading product deletes, reported as *pq.Error values.
package catalogtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/lib/pq"
)

// Store holds every table. Set Err to make the next calls fail with it.
type Store struct {
	mu       sync.Mutex
	types    []model.ProductType
	products []model.Product
	variants []model.Variant
	addOns   []model.AddOn

	Err error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) ProductTypes() *ProductTypeRepo { return &ProductTypeRepo{s} }
func (s *Store) Products() *ProductRepo         { return &ProductRepo{s} }
func (s *Store) Variants() *VariantRepo         { return &VariantRepo{s} }
func (s *Store) AddOns() *AddOnRepo             { return &AddOnRepo{s} }

// Counts reports the number of rows per table.
func (s *Store) Counts() (types, products, variants, addOns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.types), len(s.products), len(s.variants), len(s.addOns)
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint, Message: "duplicate key value violates unique constraint"}
}

func foreignKeyViolation(constraint string) error {
	return &pq.Error{Code: "23503", Constraint: constraint, Message: "violates foreign key constraint"}
}

// newestFirst orders rows by creation time descending. Rows created at the
// same instant keep the later insert first.
func newestFirst[T any](rows []T, created func(T) int64) []T {
	out := make([]T, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return created(out[i]) > created(out[j]) })
	return out
}

type ProductTypeRepo struct{ s *Store }

func (r *ProductTypeRepo) Create(_ context.Context, pt *model.ProductType) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, t := range s.types {
		if t.Name == pt.Name {
			return uniqueViolation("product_types_name_key")
		}
	}
	row := *pt
	row.Products = nil
	s.types = append(s.types, row)
	return nil
}

func (r *ProductTypeRepo) FindByID(_ context.Context, id string) (*model.ProductType, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.typeByID(id), nil
}

func (s *Store) typeByID(id string) *model.ProductType {
	for _, t := range s.types {
		if t.ID == id {
			found := t
			return &found
		}
	}
	return nil
}

func (r *ProductTypeRepo) FindAll(_ context.Context) ([]model.ProductType, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	types := newestFirst(s.types, func(t model.ProductType) int64 { return t.CreatedAt.UnixNano() })
	for i := range types {
		types[i].ProductCount = 0
		for _, p := range s.products {
			if p.ProductTypeID == types[i].ID {
				types[i].ProductCount++
			}
		}
	}
	return types, nil
}

func (r *ProductTypeRepo) Update(_ context.Context, pt *model.ProductType) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, t := range s.types {
		if t.Name == pt.Name && t.ID != pt.ID {
			return uniqueViolation("product_types_name_key")
		}
	}
	for i := range s.types {
		if s.types[i].ID == pt.ID {
			row := *pt
			row.Products = nil
			s.types[i] = row
		}
	}
	return nil
}

func (r *ProductTypeRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, p := range s.products {
		if p.ProductTypeID == id {
			return foreignKeyViolation("products_product_type_id_fkey")
		}
	}
	s.types = remove(s.types, func(t model.ProductType) bool { return t.ID == id })
	return nil
}

type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *model.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.typeByID(p.ProductTypeID) == nil {
		return foreignKeyViolation("products_product_type_id_fkey")
	}
	s.products = append(s.products, productRow(p))
	return nil
}

func productRow(p *model.Product) model.Product {
	row := *p
	row.Images = append(pq.StringArray{}, p.Images...)
	row.ProductType = nil
	row.Variants = nil
	row.AddOns = nil
	return row
}

func (r *ProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.products {
		if p.ID == id {
			found := s.hydrate(p)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	products := []model.Product{}
	for _, p := range newestFirst(s.products, func(p model.Product) int64 { return p.CreatedAt.UnixNano() }) {
		if f != nil && !s.matches(p, f) {
			continue
		}
		products = append(products, s.hydrate(p))
	}
	return products, nil
}

func (s *Store) matches(p model.Product, f *dto.ProductFilters) bool {
	if f.TypeName != "" {
		t := s.typeByID(p.ProductTypeID)
		if t == nil || !strings.EqualFold(t.Name, f.TypeName) {
			return false
		}
	}
	if f.ProductTypeID != "" && p.ProductTypeID != f.ProductTypeID {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(desc), q) {
			return false
		}
	}
	return true
}

func (r *ProductRepo) FindByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	products := []model.Product{}
	for _, id := range ids {
		for _, p := range s.products {
			if p.ID == id {
				products = append(products, s.hydrate(p))
			}
		}
	}
	return products, nil
}

func (r *ProductRepo) Update(_ context.Context, p *model.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.typeByID(p.ProductTypeID) == nil {
		return foreignKeyViolation("products_product_type_id_fkey")
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = productRow(p)
		}
	}
	return nil
}

// Delete cascades to the product's variants and add-ons.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.products = remove(s.products, func(p model.Product) bool { return p.ID == id })
	s.variants = remove(s.variants, func(v model.Variant) bool { return v.ProductID == id })
	s.addOns = remove(s.addOns, func(a model.AddOn) bool { return a.ProductID == id })
	return nil
}

func (s *Store) hydrate(p model.Product) model.Product {
	p.Images = append(pq.StringArray{}, p.Images...)
	p.ProductType = s.typeByID(p.ProductTypeID)
	p.Variants = s.variantsOf(p.ID)
	p.AddOns = s.addOnsOf(p.ID)
	return p
}

func (s *Store) productExists(id string) bool {
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) variantsOf(productID string) []model.Variant {
	out := []model.Variant{}
	for _, v := range s.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Price.Equal(out[j].Price) {
			return out[i].Price.LessThan(out[j].Price)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) addOnsOf(productID string) []model.AddOn {
	out := []model.AddOn{}
	for _, a := range s.addOns {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Price.Equal(out[j].Price) {
			return out[i].Price.LessThan(out[j].Price)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type VariantRepo struct{ s *Store }

func (r *VariantRepo) Create(_ context.Context, v *model.Variant) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if !s.productExists(v.ProductID) {
		return foreignKeyViolation("variants_product_id_fkey")
	}
	for _, existing := range s.variants {
		if existing.SKU == v.SKU {
			return uniqueViolation("variants_sku_key")
		}
	}
	row := *v
	row.Product = nil
	s.variants = append(s.variants, row)
	return nil
}

func (r *VariantRepo) FindByID(_ context.Context, id string) (*model.Variant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, v := range s.variants {
		if v.ID == id {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (r *VariantRepo) FindByProductID(_ context.Context, productID string) ([]model.Variant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.variantsOf(productID), nil
}

func (r *VariantRepo) Update(_ context.Context, v *model.Variant) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.variants {
		if existing.SKU == v.SKU && existing.ID != v.ID {
			return uniqueViolation("variants_sku_key")
		}
	}
	for i := range s.variants {
		if s.variants[i].ID == v.ID {
			row := *v
			row.Product = nil
			s.variants[i] = row
		}
	}
	return nil
}

func (r *VariantRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.variants = remove(s.variants, func(v model.Variant) bool { return v.ID == id })
	return nil
}

type AddOnRepo struct{ s *Store }

func (r *AddOnRepo) Create(_ context.Context, a *model.AddOn) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if !s.productExists(a.ProductID) {
		return foreignKeyViolation("add_ons_product_id_fkey")
	}
	row := *a
	row.Product = nil
	s.addOns = append(s.addOns, row)
	return nil
}

func (r *AddOnRepo) FindByID(_ context.Context, id string) (*model.AddOn, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.addOns {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *AddOnRepo) FindByProductID(_ context.Context, productID string) ([]model.AddOn, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.addOnsOf(productID), nil
}

func (r *AddOnRepo) Update(_ context.Context, a *model.AddOn) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.addOns {
		if s.addOns[i].ID == a.ID {
			row := *a
			row.Product = nil
			s.addOns[i] = row
		}
	}
	return nil
}

func (r *AddOnRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.addOns = remove(s.addOns, func(a model.AddOn) bool { return a.ID == id })
	return nil
}

func remove[T any](rows []T, match func(T) bool) []T {
	out := rows[:0]
	for _, r := range rows {
		if !match(r) {
			out = append(out, r)
		}
	}
	return out
}
