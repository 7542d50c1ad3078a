package servicetest

import (
	"context"
	"sync"

	"moviematrix/internal/models"

	"github.com/goccy/go-json"
)

// Notifier records every aggregate it is told about.
type Notifier struct {
	mu     sync.Mutex
	events []models.RatingAggregate
}

func (n *Notifier) RatingUpdated(agg models.RatingAggregate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, agg)
}

func (n *Notifier) Events() []models.RatingAggregate {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.RatingAggregate(nil), n.events...)
}

// MapCache is a ListCache backed by a map of JSON blobs.
type MapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMapCache() *MapCache {
	return &MapCache{data: make(map[string][]byte)}
}

func (c *MapCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *MapCache) SetJSON(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *MapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *MapCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
