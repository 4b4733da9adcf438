// Package storefront holds the presentation logic of the catalog client:
// grouping and filtering the catalog, resolving variant and add-on
// selections, pricing them and keeping only the latest catalog response.
package storefront

import (
	"strconv"
	"strings"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/shopspring/decimal"
)

// AllTypes selects the unfiltered catalog view.
const AllTypes = "all"

type TypeGroup struct {
	TypeName string
	Products []v1.Product
}

// TypeTab is one filter tab of the catalog view.
type TypeTab struct {
	Name  string
	Count int
}

// VariantMode decides how variants are offered on the detail view.
type VariantMode int

const (
	// ModeNone means the product has no variants.
	ModeNone VariantMode = iota
	// ModeSingle shows the only variant without a choice.
	ModeSingle
	// ModeCombined offers separate size and color pickers resolved as a pair.
	ModeCombined
	// ModeSimple lists every variant; out-of-stock ones cannot be picked.
	ModeSimple
)

func (m VariantMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeCombined:
		return "combined"
	case ModeSimple:
		return "simple"
	}
	return "none"
}

func TypeName(p *v1.Product) string {
	if p.ProductType == nil {
		return ""
	}
	return p.ProductType.Name
}

func isType(name, want string) bool {
	return strings.EqualFold(name, want)
}

// IsFood reports whether the product type is food, ignoring case.
func IsFood(p *v1.Product) bool {
	return isType(TypeName(p), "food")
}

// GroupByType groups products by type name in first-seen order.
func GroupByType(products []v1.Product) []TypeGroup {
	var groups []TypeGroup
	index := make(map[string]int)
	for _, p := range products {
		name := TypeName(&p)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, TypeGroup{TypeName: name})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Tabs builds the filter tabs: the "all" tab followed by one tab per product
// type, counting the loaded products whose type name matches exactly.
func Tabs(products []v1.Product, types []v1.ProductTypeWithCount) []TypeTab {
	tabs := make([]TypeTab, 0, len(types)+1)
	tabs = append(tabs, TypeTab{Name: AllTypes, Count: len(products)})
	for _, t := range types {
		n := 0
		for i := range products {
			if TypeName(&products[i]) == t.Name {
				n++
			}
		}
		tabs = append(tabs, TypeTab{Name: t.Name, Count: n})
	}
	return tabs
}

// PriceRange returns the lowest and highest variant price. ok is false when
// the product has no variants.
func PriceRange(variants []v1.Variant) (lo, hi decimal.Decimal, ok bool) {
	if len(variants) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	lo, hi = variants[0].Price, variants[0].Price
	for _, v := range variants[1:] {
		if v.Price.LessThan(lo) {
			lo = v.Price
		}
		if v.Price.GreaterThan(hi) {
			hi = v.Price
		}
	}
	return lo, hi, true
}

// PriceLabel is the card price line in rupees.
func PriceLabel(p *v1.Product) string {
	lo, hi, ok := PriceRange(p.Variants)
	if !ok {
		return "No variants"
	}
	return FormatPriceRange(ConvertUSDToINR(lo), ConvertUSDToINR(hi))
}

func ModeOf(variants []v1.Variant) VariantMode {
	switch len(variants) {
	case 0:
		return ModeNone
	case 1:
		return ModeSingle
	}
	var hasSize, hasColor bool
	for _, v := range variants {
		hasSize = hasSize || nonEmpty(v.Size)
		hasColor = hasColor || nonEmpty(v.Color)
	}
	if hasSize && hasColor {
		return ModeCombined
	}
	return ModeSimple
}

// ColorLabel names the color attribute. Electronics use it for the processor.
func ColorLabel(typeName string) string {
	if isType(typeName, "electronics") {
		return "Processor"
	}
	return "Color"
}

// Sizes lists the distinct sizes in first-seen order.
func Sizes(variants []v1.Variant) []string {
	return distinct(variants, func(v v1.Variant) *string { return v.Size })
}

// Colors lists the distinct colors in first-seen order.
func Colors(variants []v1.Variant) []string {
	return distinct(variants, func(v v1.Variant) *string { return v.Color })
}

func distinct(variants []v1.Variant, attr func(v1.Variant) *string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range variants {
		s := attr(v)
		if !nonEmpty(s) || seen[*s] {
			continue
		}
		seen[*s] = true
		out = append(out, *s)
	}
	return out
}

// StockLabel is "N in stock" or "Out of stock".
func StockLabel(stock int) string {
	if stock > 0 {
		return strconv.Itoa(stock) + " in stock"
	}
	return "Out of stock"
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
