package rest

import (
	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func ToProductType(m *model.ProductType) *v1.ProductType {
	if m == nil {
		return nil
	}
	return &v1.ProductType{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToProductTypeWithCount(m *model.ProductType) v1.ProductTypeWithCount {
	return v1.ProductTypeWithCount{
		ProductType: *ToProductType(m),
		Count:       v1.ProductCount{Products: m.ProductCount},
	}
}

func ToProductTypeDetail(m *model.ProductType) v1.ProductTypeDetail {
	products := make([]v1.Product, len(m.Products))
	for i := range m.Products {
		products[i] = ToProduct(&m.Products[i])
		// Already nested under its type.
		products[i].ProductType = nil
	}
	return v1.ProductTypeDetail{
		ProductType: *ToProductType(m),
		Products:    products,
	}
}

func ToProductSummary(m *model.Product) *v1.ProductSummary {
	if m == nil {
		return nil
	}
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}
	return &v1.ProductSummary{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Images:        images,
		ProductTypeID: m.ProductTypeID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		ProductType:   ToProductType(m.ProductType),
	}
}

func ToProduct(m *model.Product) v1.Product {
	variants := make([]v1.Variant, len(m.Variants))
	for i := range m.Variants {
		variants[i] = ToVariant(&m.Variants[i])
	}
	addOns := make([]v1.AddOn, len(m.AddOns))
	for i := range m.AddOns {
		addOns[i] = ToAddOn(&m.AddOns[i])
	}
	return v1.Product{
		ProductSummary: *ToProductSummary(m),
		Variants:       variants,
		AddOns:         addOns,
	}
}

func ToProducts(ms []model.Product) []v1.Product {
	out := make([]v1.Product, len(ms))
	for i := range ms {
		out[i] = ToProduct(&ms[i])
	}
	return out
}

func ToVariant(m *model.Variant) v1.Variant {
	return v1.Variant{
		ID:        m.ID,
		Size:      m.Size,
		Color:     m.Color,
		Price:     m.Price,
		Stock:     m.Stock,
		SKU:       m.SKU,
		ProductID: m.ProductID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Product:   ToProductSummary(m.Product),
	}
}

func ToVariants(ms []model.Variant) []v1.Variant {
	out := make([]v1.Variant, len(ms))
	for i := range ms {
		out[i] = ToVariant(&ms[i])
	}
	return out
}

func ToAddOn(m *model.AddOn) v1.AddOn {
	return v1.AddOn{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ProductID:   m.ProductID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Product:     ToProductSummary(m.Product),
	}
}

func ToAddOns(ms []model.AddOn) []v1.AddOn {
	out := make([]v1.AddOn, len(ms))
	for i := range ms {
		out[i] = ToAddOn(&ms[i])
	}
	return out
}
