package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
)

// genCache is a read-through JSON cache whose keys embed a shared generation
// counter. Bumping the counter invalidates every entry at once, across all
// API instances sharing the same cache.
type genCache struct {
	cache  ports.CacheService
	prefix string
	ttl    int
}

func (g genCache) genKey() string { return g.prefix + ":gen" }

func (g genCache) key(ctx context.Context, parts ...string) string {
	if g.cache == nil {
		return ""
	}
	gen := "0"
	if data, err := g.cache.Get(ctx, g.genKey()); err == nil && len(data) > 0 {
		gen = string(data)
	}
	k := g.prefix + ":g" + gen
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// load decodes a cached value into dst and reports whether it was found.
func (g genCache) load(ctx context.Context, op, key string, dst any) bool {
	if g.cache == nil {
		return false
	}
	data, err := g.cache.Get(ctx, key)
	if err == nil && json.Unmarshal(data, dst) == nil {
		metrics.CacheHits.WithLabelValues(op).Inc()
		return true
	}
	metrics.CacheMisses.WithLabelValues(op).Inc()
	return false
}

func (g genCache) store(ctx context.Context, key string, v any) {
	if g.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = g.cache.Set(ctx, key, data, g.ttl)
	}
}

// bump invalidates all cached entries under prefix.
func (g genCache) bump(ctx context.Context) {
	if g.cache == nil {
		return
	}
	n, err := g.cache.Incr(ctx, g.genKey())
	if err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "prefix", g.prefix, "error", err)
		return
	}
	slog.DebugContext(ctx, "cache generation bumped", "prefix", g.prefix, "generation", strconv.FormatInt(n, 10))
}
