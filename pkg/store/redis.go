package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/publish"
)

// KeyPrefix namespaces publication keys in Redis.
const KeyPrefix = "lotplan:publication:"

// RedisStore keeps msgpack-encoded publications in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the server described by a redis:// URL and
// verifies the connection with PING.
func NewRedisStore(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse redis URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "redis at %s is not reachable", opts.Addr)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, pub *publish.Publication) error {
	if err := checkID(pub.ID); err != nil {
		return err
	}
	data, err := msgpack.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encode publication: %w", err)
	}
	if err := s.client.Set(ctx, KeyPrefix+pub.ID, data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "save publication %s to redis", pub.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*publish.Publication, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, KeyPrefix+id).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var pub publish.Publication
	if err := msgpack.Unmarshal(data, &pub); err != nil {
		return nil, fmt.Errorf("decode publication: %w", err)
	}
	return &pub, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
