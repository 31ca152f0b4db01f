package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mhmd-zbib/library-management/internal/domain"
)

// BookCache is a best-effort read cache for book lookups. All methods are
// nil-safe: a nil cache behaves as a permanent miss, which keeps the service
// layer testable without a redis instance.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func bookKey(id uuid.UUID) string {
	return fmt.Sprintf("book:%s", id)
}

func (c *BookCache) Get(ctx context.Context, id uuid.UUID) *domain.Book {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		return nil
	}

	var book domain.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil
	}

	return &book
}

func (c *BookCache) Set(ctx context.Context, book *domain.Book) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(book)
	if err != nil {
		return
	}

	c.client.Set(ctx, bookKey(book.ID), data, c.ttl)
}

func (c *BookCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Del(ctx, bookKey(id))
}
