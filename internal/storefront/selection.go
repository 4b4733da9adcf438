package storefront

import (
	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownVariant = errors.New("variant does not belong to this product")
	ErrUnknownAddOn   = errors.New("add-on does not belong to this product")
	ErrOutOfStock     = errors.New("variant is out of stock")
)

// Selection is the detail-view state of one product: the chosen variant and
// the toggled add-ons. It is not safe for concurrent use.
type Selection struct {
	product *v1.Product
	mode    VariantMode
	variant int // index into product.Variants, -1 when none
	addOns  map[string]bool
}

// NewSelection starts with the cheapest variant selected and every add-on
// off. Ties keep the first variant in list order.
func NewSelection(p *v1.Product) *Selection {
	s := &Selection{
		product: p,
		mode:    ModeOf(p.Variants),
		variant: -1,
		addOns:  make(map[string]bool, len(p.AddOns)),
	}
	for i, v := range p.Variants {
		if s.variant < 0 || v.Price.LessThan(p.Variants[s.variant].Price) {
			s.variant = i
		}
	}
	return s
}

func (s *Selection) Product() *v1.Product { return s.product }

func (s *Selection) Mode() VariantMode { return s.mode }

// Variant returns the selected variant, or nil when the product has none.
func (s *Selection) Variant() *v1.Variant {
	if s.variant < 0 {
		return nil
	}
	return &s.product.Variants[s.variant]
}

// SelectVariant picks a variant by id. In simple mode out-of-stock variants
// cannot be picked and the selection stays as it was.
func (s *Selection) SelectVariant(id string) error {
	for i, v := range s.product.Variants {
		if v.ID != id {
			continue
		}
		if s.mode == ModeSimple && v.Stock <= 0 {
			return ErrOutOfStock
		}
		s.variant = i
		return nil
	}
	return ErrUnknownVariant
}

// SelectSize keeps the current color and resolves the variant for the new
// size. It reports false and leaves the selection unchanged when no variant
// has that pair.
func (s *Selection) SelectSize(size string) bool {
	var color *string
	if v := s.Variant(); v != nil {
		color = v.Color
	}
	return s.resolve(&size, color)
}

// SelectColor is SelectSize for the color attribute.
func (s *Selection) SelectColor(color string) bool {
	var size *string
	if v := s.Variant(); v != nil {
		size = v.Size
	}
	return s.resolve(size, &color)
}

func (s *Selection) resolve(size, color *string) bool {
	i := s.lookup(size, color)
	if i < 0 {
		return false
	}
	s.variant = i
	return true
}

// lookup finds the variant matching the given attributes. An absent
// attribute matches anything. Duplicate pairs resolve to the most recently
// created variant.
func (s *Selection) lookup(size, color *string) int {
	found := -1
	for i, v := range s.product.Variants {
		if nonEmpty(size) && !equalAttr(v.Size, *size) {
			continue
		}
		if nonEmpty(color) && !equalAttr(v.Color, *color) {
			continue
		}
		if found < 0 || !v.CreatedAt.Before(s.product.Variants[found].CreatedAt) {
			found = i
		}
	}
	return found
}

func equalAttr(attr *string, want string) bool {
	return attr != nil && *attr == want
}

// ToggleAddOn flips one add-on and reports whether it is now selected.
func (s *Selection) ToggleAddOn(id string) (bool, error) {
	for _, a := range s.product.AddOns {
		if a.ID == id {
			s.addOns[id] = !s.addOns[id]
			return s.addOns[id], nil
		}
	}
	return false, ErrUnknownAddOn
}

func (s *Selection) IsAddOnSelected(id string) bool {
	return s.addOns[id]
}

// SelectedAddOns returns the selected add-ons in product order.
func (s *Selection) SelectedAddOns() []v1.AddOn {
	var out []v1.AddOn
	for _, a := range s.product.AddOns {
		if s.addOns[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// AddOnsTotal sums the selected add-on prices.
func (s *Selection) AddOnsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.SelectedAddOns() {
		total = total.Add(a.Price)
	}
	return total
}

// Total is the selected variant price plus the selected add-ons, in the
// stored currency.
func (s *Selection) Total() decimal.Decimal {
	total := s.AddOnsTotal()
	if v := s.Variant(); v != nil {
		total = total.Add(v.Price)
	}
	return total
}

// ShowAddOns reports whether the add-on picker is offered: food products
// with at least one add-on.
func (s *Selection) ShowAddOns() bool {
	return IsFood(s.product) && len(s.product.AddOns) > 0
}

func (s *Selection) CanAddToCart() bool {
	v := s.Variant()
	return v != nil && v.Stock > 0
}

// ActionLabel is the caption of the add-to-cart action.
func (s *Selection) ActionLabel() string {
	v := s.Variant()
	switch {
	case v == nil:
		return "Select a variant"
	case v.Stock <= 0:
		return "Out of stock"
	}
	return "Add to Cart"
}
