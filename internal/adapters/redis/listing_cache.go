package redis

// Package redis provides Redis-based adapters for the antly API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/domain/model"
)

// DefaultListingTTL bounds how stale a cached public listing page may be.
const DefaultListingTTL = 60 * time.Second

var _ core.ListingCache = (*ListingCache)(nil)

// ListingCache stores public ad listing pages as JSON.
// Pages are keyed under a generation counter; Invalidate bumps the counter so
// every previously cached page becomes unreachable and ages out through its TTL.
type ListingCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// ListingCacheOptions configures a ListingCache.
type ListingCacheOptions struct {
	Prefix string
	TTL    time.Duration
}

// NewListingCache creates a new Redis-based listing cache.
func NewListingCache(client redis.UniversalClient, opts ListingCacheOptions) *ListingCache {
	c := &ListingCache{client: client, prefix: opts.Prefix, ttl: opts.TTL}
	if c.prefix == "" {
		c.prefix = "ads:public:"
	}
	if c.ttl <= 0 {
		c.ttl = DefaultListingTTL
	}
	return c
}

func (c *ListingCache) genKey() string { return c.prefix + "gen" }

func (c *ListingCache) pageKey(ctx context.Context, page core.ListingPage) (string, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("redis get generation: %w", err)
	}
	return fmt.Sprintf("%s%d:%d:%d", c.prefix, gen, page.Limit, page.Offset), nil
}

func (c *ListingCache) Get(ctx context.Context, page core.ListingPage) ([]*model.Ad, bool, error) {
	key, err := c.pageKey(ctx, page)
	if err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var ads []*model.Ad
	if unmarshalErr := json.Unmarshal(data, &ads); unmarshalErr != nil {
		return nil, false, fmt.Errorf("unmarshal listing: %w", unmarshalErr)
	}
	return ads, true, nil
}

func (c *ListingCache) Put(ctx context.Context, page core.ListingPage, ads []*model.Ad) error {
	if ads == nil {
		ads = []*model.Ad{}
	}
	data, err := json.Marshal(ads)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	key, err := c.pageKey(ctx, page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}
