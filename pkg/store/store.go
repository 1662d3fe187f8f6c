// Package store persists publications.
//
// Three backends are provided:
//   - file: one JSON document per publication in a directory (CLI default)
//   - redis: msgpack-encoded values under a key prefix
//   - mongodb: one BSON document per publication in a collection
//
// Use [Open] to pick a backend from a URL:
//
//	st, err := store.Open(ctx, "file://./published")
//	st, err := store.Open(ctx, "redis://localhost:6379/0")
//	st, err := store.Open(ctx, "mongodb://localhost:27017/lotplan")
//	defer st.Close()
//
//	err = store.Save(ctx, st, pub)
//	pub, err := st.Get(ctx, id)
//
// Every Save is reported to the store hooks in package observability.
package store

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/observability"
	"github.com/matzehuels/lotplan/pkg/publish"
)

// Store saves and loads publications.
//
// Get returns a NOT_FOUND error for unknown ids.
type Store interface {
	Save(ctx context.Context, pub *publish.Publication) error
	Get(ctx context.Context, id string) (*publish.Publication, error)
	Close() error
}

// Open returns the store addressed by rawURL. Supported schemes are file,
// redis, rediss, mongodb and mongodb+srv.
func Open(ctx context.Context, rawURL string) (Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse store URL")
	}
	// Each case checks err itself so a failed constructor never yields a
	// non-nil Store holding a nil pointer.
	switch strings.ToLower(u.Scheme) {
	case "file", "":
		st, err := NewFileStore(filePath(u))
		if err != nil {
			return nil, err
		}
		return st, nil
	case "redis", "rediss":
		st, err := NewRedisStore(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "mongodb", "mongodb+srv":
		st, err := NewMongoStore(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported store scheme %q", u.Scheme)
	}
}

// filePath accepts both file:///abs/path and the relative file://./dir form.
func filePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Host + u.Path
}

// Save stores pub in st and reports the outcome to the store hooks.
func Save(ctx context.Context, st Store, pub *publish.Publication) error {
	start := time.Now()
	err := st.Save(ctx, pub)
	observability.Store().OnSave(ctx, Backend(st), pub.TotalSpots, time.Since(start), err)
	return err
}

// Backend names a store for logs and metrics.
func Backend(st Store) string {
	switch st.(type) {
	case *FileStore:
		return "file"
	case *RedisStore:
		return "redis"
	case *MongoStore:
		return "mongodb"
	default:
		return "custom"
	}
}
