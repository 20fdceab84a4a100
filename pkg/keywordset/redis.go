package keywordset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where the taxonomy document lives when no key is given.
const DefaultRedisKey = "eventkit:keyword_taxonomy"

// RedisSource keeps a taxonomy document under a single redis key so that
// every service replica validates against the same keyword sets.
type RedisSource struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisSource returns a source reading key. An empty key uses DefaultRedisKey.
func NewRedisSource(client redis.UniversalClient, key string, ttl time.Duration) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{client: client, key: key, ttl: ttl}
}

// Load reads and parses the document.
func (s *RedisSource) Load(ctx context.Context) (Taxonomy, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTaxonomyNotFound
	}
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatJSON)
}

// Save stores t as JSON. A zero ttl keeps it forever.
func (s *RedisSource) Save(ctx context.Context, t Taxonomy) error {
	if len(t) == 0 {
		return ErrEmptyTaxonomy
	}
	data, err := json.Marshal(t)
	if err != nil {
		return errors.Join(ErrFailedToStore, err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return errors.Join(ErrFailedToStore, err)
	}
	return nil
}

// Refresh loads the document into store.
func (s *RedisSource) Refresh(ctx context.Context, store *Store) error {
	t, err := s.Load(ctx)
	if err != nil {
		return err
	}
	store.Set(t)
	return nil
}
