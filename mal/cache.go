package mal

import (
	"time"

	"github.com/malfix-cli/malfix/filesystem"
	"github.com/malfix-cli/malfix/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData defines the structured format for persisting cached list pages to disk.
type cacheData[K comparable, T any] struct {
	Lists map[K]T `json:"lists"`
}

// cacher provides a generic wrapper for high-level caching operations.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
}

// Get retrieves a value from the cache associated with the specified key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	list, ok := data.Lists[key]
	if ok {
		return mo.Some(list)
	}

	return mo.None[T]()
}

// Set persists a key-value pair to the cache.
func (c *cacher[K, T]) Set(key K, t T) error {
	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Lists[key] = t
		return c.internal.Set(data)
	}

	internal := &cacheData[K, T]{Lists: make(map[K]T)}
	internal.Lists[key] = t
	return c.internal.Set(internal)
}

// listCacher keeps recently fetched user lists to spare the API between
// consecutive list and fix invocations.
var listCacher = &cacher[ListType, []Entry]{
	internal: gache.New[*cacheData[ListType, []Entry]](
		&gache.Options{
			Path:       where.Lists(),
			Lifetime:   10 * time.Minute,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}

// CachedUserList returns the user's list from the short-lived local cache,
// falling back to a fresh fetch when the cache is cold or expired.
func (c *Client) CachedUserList(listType ListType, limit int) ([]Entry, error) {
	if cached, ok := listCacher.Get(listType).Get(); ok {
		return cached, nil
	}

	entries, err := c.UserList(listType, limit)
	if err != nil {
		return nil, err
	}

	_ = listCacher.Set(listType, entries)
	return entries, nil
}
