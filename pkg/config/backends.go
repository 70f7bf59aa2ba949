package config

import (
	"context"
	"io"

	"github.com/matzehuels/combview/pkg/cache"
	"github.com/matzehuels/combview/pkg/layout/store"
)

// OpenStore builds the layout store described by s. The result always
// ends with the embedded store, so the built-in layout stays reachable.
// The returned closer releases database connections and is never nil.
func (s Store) OpenStore(ctx context.Context) (store.Store, io.Closer, error) {
	var chain store.Multi
	closer := multiCloser{}

	if s.Dir != "" {
		fs, err := store.NewFileStore(s.Dir)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, fs)
	}
	if s.MongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        s.MongoURI,
			Database:   s.MongoDatabase,
			Collection: s.MongoCollection,
		})
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, ms)
		closer = append(closer, ctxCloser{ctx, ms.Close})
	}
	chain = append(chain, store.NewEmbeddedStore())

	if len(chain) == 1 {
		return chain[0], closer, nil
	}
	return chain, closer, nil
}

// OpenCache builds the artifact cache described by c. fallbackDir is used
// when neither Dir nor RedisAddr is set; an empty fallbackDir disables
// caching.
func (c Cache) OpenCache(ctx context.Context, fallbackDir string) (cache.Cache, error) {
	if c.Disabled {
		return cache.NewNullCache(), nil
	}
	if c.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		dir = fallbackDir
	}
	if dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// Keyer returns the cache keyer, scoped by Prefix when one is set.
func (c Cache) Keyer() cache.Keyer {
	k := cache.NewDefaultKeyer()
	if c.Prefix != "" {
		return cache.NewScopedKeyer(k, c.Prefix)
	}
	return k
}

type ctxCloser struct {
	ctx   context.Context
	close func(context.Context) error
}

func (c ctxCloser) Close() error { return c.close(c.ctx) }

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
