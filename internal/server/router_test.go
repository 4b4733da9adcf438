package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	addonhandler "github.com/fekuna/omnipos-catalog-service/internal/addon/handler"
	addonusecase "github.com/fekuna/omnipos-catalog-service/internal/addon/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	producthandler "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	productusecase "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"
	typehandler "github.com/fekuna/omnipos-catalog-service/internal/producttype/handler"
	typeusecase "github.com/fekuna/omnipos-catalog-service/internal/producttype/usecase"
	varianthandler "github.com/fekuna/omnipos-catalog-service/internal/variant/handler"
	variantusecase "github.com/fekuna/omnipos-catalog-service/internal/variant/usecase"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type panicRoute struct{}

func (panicRoute) Register(rg *gin.RouterGroup) {
	rg.GET("/boom", func(*gin.Context) { panic("boom") })
}

func newAPI(t *testing.T, cfg RouterConfig, extra ...RouteRegistrar) *gin.Engine {
	t.Helper()
	log := logger.NewNop()
	store := catalogtest.NewStore()
	pub := &catalogtest.Publisher{}
	lists := product.NewListCache(catalogtest.NewCache(), 0, log)

	cfg.Development = true
	resources := []RouteRegistrar{
		typehandler.NewProductTypeHandler(typeusecase.NewProductTypeUseCase(store.ProductTypes(), store.Products(), pub, lists, nil, log), log),
		producthandler.NewProductHandler(productusecase.NewProductUseCase(store.Products(), store.ProductTypes(), lists, nil, pub, log), log),
		varianthandler.NewVariantHandler(variantusecase.NewVariantUseCase(store.Variants(), store.Products(), lists, pub, log), log),
		addonhandler.NewAddOnHandler(addonusecase.NewAddOnUseCase(store.AddOns(), store.Products(), lists, pub, log), log),
	}
	return NewRouter(cfg, log, append(resources, extra...)...)
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, gjson.Result) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code, gjson.Parse(w.Body.String())
}

// seed creates a product type and a product of that type and returns their ids.
func seed(t *testing.T, r http.Handler, typeName, productName string) (string, string) {
	t.Helper()
	code, pt := call(t, r, http.MethodPost, "/api/product-types", `{"name":"`+typeName+`"}`)
	require.Equal(t, http.StatusCreated, code, pt.Raw)
	code, p := call(t, r, http.MethodPost, "/api/products",
		`{"name":"`+productName+`","productTypeId":"`+pt.Get("id").String()+`"}`)
	require.Equal(t, http.StatusCreated, code, p.Raw)
	return pt.Get("id").String(), p.Get("id").String()
}

func TestHealthAndUnknownRoute(t *testing.T) {
	r := newAPI(t, RouterConfig{})

	code, body := call(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body.Get("status").String())
	assert.Equal(t, "Catalog API is running", body.Get("message").String())

	code, body = call(t, r, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route not found", body.Get("error").String())
}

func TestCatalogLifecycle(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	typeID, productID := seed(t, r, "Food", "Burger")

	code, v := call(t, r, http.MethodPost, "/api/variants",
		`{"size":"Regular","price":4.5,"stock":3,"sku":"BRG-R","productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code, v.Raw)
	assert.Equal(t, 4.5, v.Get("price").Float())
	assert.Equal(t, "Burger", v.Get("product.name").String())

	code, a := call(t, r, http.MethodPost, "/api/add-ons",
		`{"name":"Cheese","price":0.75,"productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code, a.Raw)

	code, detail := call(t, r, http.MethodGet, "/api/product-types/"+typeID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Burger", detail.Get("products.0.name").String())
	assert.Equal(t, "BRG-R", detail.Get("products.0.variants.0.sku").String())
	assert.Equal(t, "Cheese", detail.Get("products.0.addOns.0.name").String())

	code, list := call(t, r, http.MethodGet, "/api/product-types", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), list.Get("0._count.products").Int())

	code, byType := call(t, r, http.MethodGet, "/api/products/by-type/food", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, byType.Array(), 1)

	code, filtered := call(t, r, http.MethodGet, "/api/products?type=apparel", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, filtered.IsArray())
	assert.Empty(t, filtered.Array())

	code, found := call(t, r, http.MethodGet, "/api/products/search?q=burg", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, productID, found.Get("0.id").String())

	code, body := call(t, r, http.MethodDelete, "/api/product-types/"+typeID, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete product type with existing products", body.Get("error").String())

	code, body = call(t, r, http.MethodDelete, "/api/products/"+productID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product deleted successfully", body.Get("message").String())

	code, _ = call(t, r, http.MethodGet, "/api/variants/"+v.Get("id").String(), "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, r, http.MethodDelete, "/api/product-types/"+typeID, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestValidationErrors(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	_, productID := seed(t, r, "apparel", "T-Shirt")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"missing type name", http.MethodPost, "/api/product-types", `{}`, http.StatusBadRequest, "Name is required"},
		{"malformed json", http.MethodPost, "/api/products", `{"name":`, http.StatusBadRequest, "Invalid request body"},
		{"missing product type", http.MethodPost, "/api/products", `{"name":"Hat"}`, http.StatusBadRequest, "Name and productTypeId are required"},
		{"unknown product type", http.MethodPost, "/api/products", `{"name":"Hat","productTypeId":"00000000-0000-0000-0000-000000000000"}`, http.StatusBadRequest, "Invalid product type ID"},
		{"missing price", http.MethodPost, "/api/variants", `{"sku":"A","productId":"` + productID + `"}`, http.StatusBadRequest, "Price, SKU, and productId are required"},
		{"negative price", http.MethodPost, "/api/variants", `{"sku":"A","price":-1,"productId":"` + productID + `"}`, http.StatusBadRequest, "Price must be a non-negative number"},
		{"add-on on apparel", http.MethodPost, "/api/add-ons", `{"name":"Wrap","price":1,"productId":"` + productID + `"}`, http.StatusBadRequest, "Add-ons can only be created for food items"},
		{"empty search", http.MethodGet, "/api/products/search", "", http.StatusBadRequest, "Search query is required"},
		{"missing product", http.MethodGet, "/api/products/not-an-id", "", http.StatusNotFound, "Product not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := call(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, code, body.Raw)
			assert.Equal(t, tc.msg, body.Get("error").String())
		})
	}
}

func TestColumnLimitsAreBadRequest(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	typeID, productID := seed(t, r, "Food", "Burger")
	long := strings.Repeat("x", 150)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		msg    string
	}{
		{"long sku", http.MethodPost, "/api/variants", `{"price":1,"sku":"` + long + `","productId":"` + productID + `"}`, "sku must be at most 100 characters"},
		{"long color", http.MethodPost, "/api/variants", `{"price":1,"sku":"A","color":"` + long + `","productId":"` + productID + `"}`, "color must be at most 100 characters"},
		{"variant price at limit", http.MethodPost, "/api/variants", `{"price":100000000,"sku":"A","productId":"` + productID + `"}`, "Price must be less than 100000000"},
		{"add-on price at limit", http.MethodPost, "/api/add-ons", `{"name":"Gold","price":100000000,"productId":"` + productID + `"}`, "Price must be less than 100000000"},
		{"long type name", http.MethodPost, "/api/product-types", `{"name":"` + strings.Repeat("n", 256) + `"}`, "name must be at most 255 characters"},
		{"long product rename", http.MethodPut, "/api/products/" + productID, `{"name":"` + strings.Repeat("n", 256) + `"}`, "name must be at most 255 characters"},
		{"long type rename", http.MethodPut, "/api/product-types/" + typeID, `{"name":"` + strings.Repeat("n", 256) + `"}`, "name must be at most 255 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := call(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, code, body.Raw)
			assert.Equal(t, tc.msg, body.Get("error").String())
		})
	}

	code, v := call(t, r, http.MethodPost, "/api/variants",
		`{"price":99999999.99,"sku":"`+strings.Repeat("s", 100)+`","productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code, v.Raw)
	assert.Equal(t, 99999999.99, v.Get("price").Float())
}

func TestProductDetailListsSubmittedVariantAndAddOn(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	_, productID := seed(t, r, "Food", "Pizza")

	code, body := call(t, r, http.MethodPost, "/api/variants",
		`{"sku":"X-1","price":3.99,"stock":10,"productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code, body.Raw)
	code, body = call(t, r, http.MethodPost, "/api/add-ons",
		`{"name":"Extra Cheese","price":0.99,"productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code, body.Raw)

	code, p := call(t, r, http.MethodGet, "/api/products/"+productID, "")
	require.Equal(t, http.StatusOK, code, p.Raw)
	assert.Equal(t, "Food", p.Get("productType.name").String())

	variants := p.Get("variants").Array()
	require.Len(t, variants, 1)
	assert.Equal(t, "X-1", variants[0].Get("sku").String())
	assert.Equal(t, "3.99", variants[0].Get("price").Raw)
	assert.Equal(t, int64(10), variants[0].Get("stock").Int())
	assert.Equal(t, productID, variants[0].Get("productId").String())

	addOns := p.Get("addOns").Array()
	require.Len(t, addOns, 1)
	assert.Equal(t, "Extra Cheese", addOns[0].Get("name").String())
	assert.Equal(t, "0.99", addOns[0].Get("price").Raw)
	assert.Equal(t, productID, addOns[0].Get("productId").String())
}

func TestDuplicateSKUIsBadRequest(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	_, productID := seed(t, r, "apparel", "T-Shirt")
	body := `{"price":10,"sku":"TS-1","productId":"` + productID + `"}`

	code, _ := call(t, r, http.MethodPost, "/api/variants", body)
	require.Equal(t, http.StatusCreated, code)

	code, res := call(t, r, http.MethodPost, "/api/variants", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "SKU must be unique", res.Get("error").String())
}

func TestPartialUpdateKeepsOmittedFields(t *testing.T) {
	r := newAPI(t, RouterConfig{})
	_, productID := seed(t, r, "apparel", "T-Shirt")
	code, v := call(t, r, http.MethodPost, "/api/variants",
		`{"size":"M","color":"Red","price":10,"stock":2,"sku":"TS-M","productId":"`+productID+`"}`)
	require.Equal(t, http.StatusCreated, code)

	code, updated := call(t, r, http.MethodPut, "/api/variants/"+v.Get("id").String(), `{"stock":0}`)
	require.Equal(t, http.StatusOK, code, updated.Raw)
	assert.Equal(t, int64(0), updated.Get("stock").Int())
	assert.Equal(t, "Red", updated.Get("color").String())
	assert.Equal(t, "TS-M", updated.Get("sku").String())
}

func TestRecoveryAnswersGenericError(t *testing.T) {
	r := newAPI(t, RouterConfig{}, panicRoute{})

	code, body := call(t, r, http.MethodGet, "/api/boom", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Something went wrong!", body.Get("error").String())
}

func TestCORS(t *testing.T) {
	r := newAPI(t, RouterConfig{AllowedOrigins: []string{"http://shop.local"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://shop.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	r := newAPI(t, RouterConfig{RateLimiter: NewRateLimiter(0, 2)})

	for i := 0; i < 2; i++ {
		code, _ := call(t, r, http.MethodGet, "/api/health", "")
		require.Equal(t, http.StatusOK, code)
	}
	code, body := call(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "Too many requests", body.Get("error").String())
}

func TestRateLimiterCleanupForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.idle = -time.Second
	rl.allow("192.0.2.1")

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}
