package api

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const detailCacheSize = 128

// DetailCache keeps recently opened content in memory so re-opening an entry
// from the library is instant. It never outlives the process.
type DetailCache struct {
	client *Client
	cache  *lru.Cache[string, *ContentDetail]
}

func NewDetailCache(client *Client) (*DetailCache, error) {
	cache, err := lru.New[string, *ContentDetail](detailCacheSize)
	if err != nil {
		return nil, err
	}

	return &DetailCache{
		client: client,
		cache:  cache,
	}, nil
}

// Get returns the cached record or fetches and caches it.
func (d *DetailCache) Get(ctx context.Context, id string) (*ContentDetail, error) {
	if detail, ok := d.cache.Get(id); ok {
		return detail, nil
	}

	detail, err := d.client.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	d.cache.Add(id, detail)
	return detail, nil
}

// Invalidate drops a single entry, for when a view mutates server state.
func (d *DetailCache) Invalidate(id string) {
	d.cache.Remove(id)
}

func (d *DetailCache) Len() int {
	return d.cache.Len()
}
