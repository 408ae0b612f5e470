// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, stamps, caches, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services speak DTOs (package dto) to the handlers and models (package
// model) to the repositories. They depend on repository interfaces and on
// cache.Cache, so tests pass in-memory fakes for both.
//
// CACHING:
// The unfiltered list, the featured/current list and get-by-id are
// read-through cached. Filtered lists are not. Every successful
// create/update/delete evicts all namespaces of that entity, so a read after
// a write never sees the old value.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/paul-ayesiga/portfolio-service/internal/cache"
)

// allKey is the cache key for whole-list entries.
const allKey = "all"

// clock returns the time stamped on writes: UTC, whole seconds (the wire
// format has no fractional part, so cached and stored values agree).
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// readThrough returns the cached value for namespace/key, or calls load and
// caches its result. Cache failures are logged and never fail the read.
//
// A load that read the store before a concurrent write can still Put after
// that write's evict. The stale entry then lives until the TTL expires, or
// until the next write when the TTL is zero.
func readThrough[T any](ctx context.Context, c cache.Cache, logger *slog.Logger, namespace, key string, load func(context.Context) (T, error)) (T, error) {
	var out T

	hit, err := cache.GetJSON(ctx, c, namespace, key, &out)
	if err != nil {
		logger.Warn("cache read failed",
			slog.String("namespace", namespace),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	if hit {
		return out, nil
	}

	out, err = load(ctx)
	if err != nil {
		return out, err
	}

	if err := cache.PutJSON(ctx, c, namespace, key, out); err != nil {
		logger.Warn("cache write failed",
			slog.String("namespace", namespace),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return out, nil
}

// evict drops every namespace after a write. A failure is logged: the write
// itself has already committed.
func evict(ctx context.Context, c cache.Cache, logger *slog.Logger, namespaces ...string) {
	if err := cache.Evict(ctx, c, namespaces...); err != nil {
		logger.Error("cache eviction failed",
			slog.Any("namespaces", namespaces),
			slog.String("error", err.Error()),
		)
	}
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
