package catalogtest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Published struct {
	Type     string
	EntityID string
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	events []Published
}

func (p *Publisher) Publish(_ context.Context, eventType, entityID string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Published{Type: eventType, EntityID: entityID})
}

func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// Cache is an in-memory cache. DeletePattern supports a trailing "*".
type Cache struct {
	mu      sync.Mutex
	data    map[string][]byte
	Gets    int
	Hits    int
	Deletes int
}

func NewCache() *Cache {
	return &Cache{data: map[string][]byte{}}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	v, ok := c.data[key]
	if ok {
		c.Hits++
	}
	return v, ok, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *Cache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Deletes++
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if k == pattern || (prefix != pattern && strings.HasPrefix(k, prefix)) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *Cache) CountPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

// Index records the documents written to a product search index. Each entry
// is the product id and its type name at indexing time.
type Index struct {
	mu      sync.Mutex
	indexed [][2]string
	removed []string
}

func (i *Index) IndexProduct(_ context.Context, p *model.Product) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	typeName := ""
	if p.ProductType != nil {
		typeName = p.ProductType.Name
	}
	i.indexed = append(i.indexed, [2]string{p.ID, typeName})
	return nil
}

func (i *Index) RemoveProduct(_ context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.removed = append(i.removed, id)
	return nil
}

func (i *Index) SearchProductIDs(context.Context, string, int) ([]string, error) {
	return []string{}, nil
}

// Indexed returns the type name last indexed for each product id.
func (i *Index) Indexed() map[string]string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make(map[string]string, len(i.indexed))
	for _, e := range i.indexed {
		out[e[0]] = e[1]
	}
	return out
}
