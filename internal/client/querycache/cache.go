// Package querycache memoizes read results by key, collapses concurrent
// loads of the same key, and forgets results when a mutation invalidates them.
package querycache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"local-deals/internal/pkg/clock"

	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

// Key addresses one cached read. Kind groups keys for bulk invalidation
// ("deals"), Scope narrows it ("category=food&sortBy=newest").
type Key struct {
	Kind  string
	Scope string
}

func K(kind string, scope ...string) Key {
	k := Key{Kind: kind}
	if len(scope) > 0 {
		k.Scope = scope[0]
	}
	return k
}

func (k Key) String() string {
	if k.Scope == "" {
		return k.Kind
	}
	return k.Kind + "/" + k.Scope
}

type entry struct {
	value  any
	stored time.Time
}

type Cache struct {
	ttl   time.Duration
	clock clock.Clock
	group singleflight.Group

	mu      sync.Mutex
	entries map[Key]entry
	keyGen  map[Key]uint64
	kindGen map[string]uint64
	epoch   uint64
}

type Option func(*Cache)

// WithTTL sets how long a result is served without reloading. Zero or
// negative disables expiry.
func WithTTL(d time.Duration) Option { return func(c *Cache) { c.ttl = d } }

func WithClock(cl clock.Clock) Option { return func(c *Cache) { c.clock = cl } }

func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:      DefaultTTL,
		clock:    clock.NewRealClock(),
		entries: map[Key]entry{},
		keyGen:  map[Key]uint64{},
		kindGen: map[string]uint64{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type stamp struct {
	epoch, kind, key uint64
}

func (s stamp) String() string {
	return strconv.FormatUint(s.epoch, 10) + "." + strconv.FormatUint(s.kind, 10) + "." + strconv.FormatUint(s.key, 10)
}

// version changes whenever k is invalidated, individually, by kind, or by Reset.
// Requires c.mu.
func (c *Cache) version(k Key) stamp {
	return stamp{epoch: c.epoch, kind: c.kindGen[k.Kind], key: c.keyGen[k]}
}

func (c *Cache) lookup(k Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.clock.Now().Sub(e.stored) >= c.ttl {
		delete(c.entries, k)
		return nil, false
	}
	return e.value, true
}

// Fetch returns the cached value for key or runs load. Concurrent callers of
// the same key share one load. A result whose key was invalidated while it
// was loading is returned to its callers but not stored.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.lookup(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	c.mu.Lock()
	ver := c.version(key)
	c.mu.Unlock()

	// The shared load must outlive any single caller, so it runs detached and
	// each caller waits on its own context.
	flight := key.String() + "@" + ver.String()
	ch := c.group.DoChan(flight, func() (any, error) {
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.version(key) == ver {
			c.entries[key] = entry{value: v, stored: c.clock.Now()}
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		t, _ := res.Val.(T)
		return t, nil
	}
}

// Peek returns the cached value without loading.
func Peek[T any](c *Cache, key Key) (T, bool) {
	var zero T
	v, ok := c.lookup(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Set stores v directly, as after a mutation whose response is the new state.
func Set[T any](c *Cache, key Key, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, stored: c.clock.Now()}
}

func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.keyGen[k]++
	}
}

// InvalidateKind drops every key of the given kind, whatever its scope.
func (c *Cache) InvalidateKind(kinds ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, kind := range kinds {
		for k := range c.entries {
			if k.Kind == kind {
				delete(c.entries, k)
			}
		}
		c.kindGen[kind]++
	}
}

// Reset drops everything, as on a change of identity.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[Key]entry{}
	c.epoch++
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
