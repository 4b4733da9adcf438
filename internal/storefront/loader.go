package storefront

import (
	"context"
	"sync"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgCatalogLoadFailed = "Failed to load catalog data. Please try again later."
	MsgFilterFailed      = "Failed to filter products. Please try again."
	MsgProductLoadFailed = "Failed to load product details. Please try again later."
)

// ErrSuperseded is returned to a request whose response was dropped because
// a newer request started after it.
var ErrSuperseded = errors.New("request superseded by a newer one")

// CatalogSource reads the catalog from the API.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]v1.Product, error)
	ListProductsByType(ctx context.Context, typeName string) ([]v1.Product, error)
	ListProductTypes(ctx context.Context) ([]v1.ProductTypeWithCount, error)
}

type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*v1.Product, error)
}

// Failure carries the message shown to the user next to the cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// CatalogState is what the catalog view renders.
type CatalogState struct {
	Products     []v1.Product
	Types        []v1.ProductTypeWithCount
	SelectedType string
	Error        string
}

// Catalog loads and filters the catalog view.
type Catalog struct {
	src    CatalogSource
	logger logger.ZapLogger
	seq    Sequencer

	mu    sync.RWMutex
	state CatalogState
}

func NewCatalog(src CatalogSource, log logger.ZapLogger) *Catalog {
	return &Catalog{
		src:    src,
		logger: log,
		state:  CatalogState{SelectedType: AllTypes},
	}
}

// State returns a copy of the current view state.
func (c *Catalog) State() CatalogState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Load fetches products and product types in parallel.
func (c *Catalog) Load(ctx context.Context) error {
	ctx, token := c.seq.Begin(ctx)
	defer c.seq.Finish(token)

	var (
		products []v1.Product
		types    []v1.ProductTypeWithCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.src.ListProducts(gctx)
		return errors.Wrap(err, "list products")
	})
	g.Go(func() error {
		var err error
		types, err = c.src.ListProductTypes(gctx)
		return errors.Wrap(err, "list product types")
	})
	err := g.Wait()

	return c.publish(token, err, MsgCatalogLoadFailed, func(s *CatalogState) {
		s.Products = products
		s.Types = types
		s.SelectedType = AllTypes
	})
}

// Filter reloads the products of one type, or every product for AllTypes.
// A response that arrives after a newer Filter or Load started is dropped.
func (c *Catalog) Filter(ctx context.Context, typeName string) error {
	ctx, token := c.seq.Begin(ctx)
	defer c.seq.Finish(token)

	var (
		products []v1.Product
		err      error
	)
	if typeName == AllTypes || typeName == "" {
		typeName = AllTypes
		products, err = c.src.ListProducts(ctx)
	} else {
		products, err = c.src.ListProductsByType(ctx, typeName)
	}

	return c.publish(token, err, MsgFilterFailed, func(s *CatalogState) {
		s.Products = products
		s.SelectedType = typeName
	})
}

func (c *Catalog) publish(token uint64, err error, failMsg string, apply func(*CatalogState)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seq.IsLatest(token) {
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error("catalog request failed", zap.Uint64("token", token), zap.Error(err))
		c.state.Error = failMsg
		return &Failure{Message: failMsg, Err: err}
	}
	apply(&c.state)
	c.state.Error = ""
	return nil
}

// LoadProduct fetches one product and starts its selection.
func LoadProduct(ctx context.Context, src ProductSource, id string) (*Selection, error) {
	p, err := src.GetProduct(ctx, id)
	if err != nil {
		return nil, &Failure{Message: MsgProductLoadFailed, Err: err}
	}
	return NewSelection(p), nil
}
