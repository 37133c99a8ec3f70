// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// cacheKey identifies a value whose digest depends only on its type
// and a short text: booleans, typed nulls, and symbols with text.
type cacheKey struct {
	typ  ion.Type
	null bool
	text string
}

// cacheKeyFor returns the key for v's value digest, ignoring field
// name and annotations. ok is false for values that are not cached.
func cacheKeyFor(v *ion.Value) (key cacheKey, ok bool) {
	switch {
	case v.Null || v.Type == ion.NullType:
		return cacheKey{typ: v.Type, null: true}, true
	case v.Type == ion.BoolType:
		if v.Bool {
			return cacheKey{typ: ion.BoolType, text: "true"}, true
		}
		return cacheKey{typ: ion.BoolType, text: "false"}, true
	case v.Type == ion.SymbolType && v.Symbol.HasText():
		return symbolCacheKey(*v.Symbol.Text), true
	}
	return cacheKey{}, false
}

func symbolCacheKey(text string) cacheKey {
	return cacheKey{typ: ion.SymbolType, text: text}
}

// digestCache holds value digests. Stored and returned slices are
// never modified.
type digestCache interface {
	get(key cacheKey) ([]byte, bool)
	put(key cacheKey, digest []byte)
}

// newDigestCache returns the cache for an engine: a no-op cache when
// disabled, an LRU of size entries when size is positive, and an
// unbounded map otherwise.
func newDigestCache(disabled bool, size int) (digestCache, error) {
	switch {
	case disabled:
		return noopCache{}, nil
	case size > 0:
		cache, err := lru.New[cacheKey, []byte](size)
		if err != nil {
			return nil, err
		}
		return &lruCache{entries: cache}, nil
	default:
		return mapCache{}, nil
	}
}

type noopCache struct{}

func (noopCache) get(cacheKey) ([]byte, bool) { return nil, false }

func (noopCache) put(cacheKey, []byte) {}

type mapCache map[cacheKey][]byte

func (c mapCache) get(key cacheKey) ([]byte, bool) {
	digest, ok := c[key]
	return digest, ok
}

func (c mapCache) put(key cacheKey, digest []byte) {
	c[key] = digest
}

type lruCache struct {
	entries *lru.Cache[cacheKey, []byte]
}

func (c *lruCache) get(key cacheKey) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *lruCache) put(key cacheKey, digest []byte) {
	c.entries.Add(key, digest)
}
