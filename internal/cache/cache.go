// Package cache is the read-through cache used by the services.
//
// Entries live in named namespaces ("projects", "project", ...). Services
// read with Get, fill with Put after a store hit, and call EvictAll for every
// namespace of an entity after a successful write. Values are opaque bytes;
// GetJSON and PutJSON handle encoding.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paul-ayesiga/portfolio-service/internal/metrics"
)

type Cache interface {
	// Get returns the value stored under key, and false on a miss.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	// EvictAll drops every entry of namespace.
	EvictAll(ctx context.Context, namespace string) error
}

// Nop never stores anything. It backs CACHE_DRIVER=none.
type Nop struct{}

var _ Cache = Nop{}

func (Nop) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Put(context.Context, string, string, []byte) error         { return nil }
func (Nop) EvictAll(context.Context, string) error                    { return nil }

// GetJSON looks key up and decodes a hit into out. Hits and misses are
// counted per namespace.
func GetJSON(ctx context.Context, c Cache, namespace, key string, out any) (bool, error) {
	b, ok, err := c.Get(ctx, namespace, key)
	if err != nil {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false, err
	}
	if !ok || len(b) == 0 {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false, fmt.Errorf("cache: decoding %s/%s: %w", namespace, key, err)
	}
	metrics.CacheHits.WithLabelValues(namespace).Inc()
	return true, nil
}

func PutJSON(ctx context.Context, c Cache, namespace, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encoding %s/%s: %w", namespace, key, err)
	}
	return c.Put(ctx, namespace, key, b)
}

// Evict drops each namespace in turn and returns the first error. Later
// namespaces are still attempted after a failure.
func Evict(ctx context.Context, c Cache, namespaces ...string) error {
	var first error
	for _, ns := range namespaces {
		metrics.CacheEvictions.WithLabelValues(ns).Inc()
		if err := c.EvictAll(ctx, ns); err != nil && first == nil {
			first = fmt.Errorf("cache: evicting %s: %w", ns, err)
		}
	}
	return first
}
