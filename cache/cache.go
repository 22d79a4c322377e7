package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// The cache holds large read-only objects, such as opening books, that are
// expensive to load and shared by every game the process plays. Objects are
// keyed by the path they were loaded from.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(key string) (any, error)

// globalObjectCache is the process-wide cache. It is never replaced, so
// every Load sees the same objects.
var globalObjectCache = newCache()

func newCache() *cache {
	return &cache{objects: make(map[string]any)}
}

func (c *cache) get(key string, load loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := load(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the object cached under name, loading it with load first if
// it is not there yet. A failed load is not cached.
func Load(name string, load loadFunc) (any, error) {
	return globalObjectCache.get(name, load)
}

// Get is Load with the result asserted to T.
func Get[T any](name string, load func(key string) (T, error)) (T, error) {
	var zero T
	obj, err := Load(name, func(key string) (any, error) { return load(key) })
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("cached object %q is a %T", name, obj)
	}
	return t, nil
}
