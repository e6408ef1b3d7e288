/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tzdb

import (
	"context"
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/tz"
)

// DefaultCacheSize is the number of entries kept per lookup kind.
const DefaultCacheSize = 4096

// Metrics counts cache traffic. The lookup label is "canonical" or
// "wallclock".
type Metrics struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dxtime_tzdb_cache_hits_total",
			Help: "Zone database lookups answered from the cache",
		}, []string{"lookup"}),
		Misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dxtime_tzdb_cache_misses_total",
			Help: "Zone database lookups forwarded to the underlying database",
		}, []string{"lookup"}),
	}
}

// Cache is a tz.Database that remembers the answers of another one.
// Concurrent misses for the same key reach the underlying database once.
// Errors are not cached.
type Cache struct {
	db        tz.Database
	canonical *lru.Cache
	wall      *lru.Cache
	group     singleflight.Group
	metrics   *Metrics
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMetrics reports hits and misses to m.
func WithMetrics(m *Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache wraps db with two LRUs of size entries each. A size of zero or
// less selects DefaultCacheSize.
func NewCache(db tz.Database, size int, opts ...CacheOption) (*Cache, error) {
	if db == nil {
		return nil, &errors.ValidationError{Type: "Cache", Field: "Database", Reason: "must not be nil"}
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	canonical, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	wall, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	c := &Cache{db: db, canonical: canonical, wall: wall, metrics: NewMetrics(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type wallKey struct {
	id   string
	secs int64
}

// Canonical implements tz.Database.
func (c *Cache) Canonical(id string) (string, error) {
	if v, ok := c.canonical.Get(id); ok {
		c.metrics.Hits.WithLabelValues("canonical").Inc()
		return v.(string), nil
	}
	c.metrics.Misses.WithLabelValues("canonical").Inc()
	v, err, _ := c.group.Do("c:"+id, func() (any, error) {
		name, err := c.db.Canonical(id)
		if err != nil {
			return nil, err
		}
		c.canonical.Add(id, name)
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// WallClock implements tz.Database.
func (c *Cache) WallClock(id string, epochSeconds int64) (civil.DateTime, error) {
	key := wallKey{id: id, secs: epochSeconds}
	if v, ok := c.wall.Get(key); ok {
		c.metrics.Hits.WithLabelValues("wallclock").Inc()
		return v.(civil.DateTime), nil
	}
	c.metrics.Misses.WithLabelValues("wallclock").Inc()
	v, err, _ := c.group.Do("w:"+id+"@"+strconv.FormatInt(epochSeconds, 10), func() (any, error) {
		dt, err := c.db.WallClock(id, epochSeconds)
		if err != nil {
			return nil, err
		}
		c.wall.Add(key, dt)
		return dt, nil
	})
	if err != nil {
		return civil.DateTime{}, err
	}
	return v.(civil.DateTime), nil
}

// Warm resolves ids concurrently so later lookups of their names hit the
// cache. It stops at the first unknown zone.
func (c *Cache) Warm(ctx context.Context, ids []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.Canonical(id)
			return err
		})
	}
	return g.Wait()
}

// Len returns the number of cached entries across both lookups.
func (c *Cache) Len() int {
	return c.canonical.Len() + c.wall.Len()
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	c.canonical.Purge()
	c.wall.Purge()
}

var _ tz.Database = (*Cache)(nil)
