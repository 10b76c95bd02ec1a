// Package store holds the in-memory state containers for resources, alerts,
// chat, notifications, the session and the theme. Each container is created
// explicitly with its seed data and is safe for use from many goroutines;
// every mutation is applied atomically and is visible to readers as soon as
// the call returns. Reads hand out copies.
package store

import (
	"strconv"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator issues entity ids.
type IDGenerator interface {
	NewID(now time.Time) string
}

// TimestampIDs issues decimal Unix-millisecond ids. Two calls in the same
// millisecond would collide, so the counter is bumped past the last issued
// value and ids stay strictly increasing within the process.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
}

// NewID implements IDGenerator.
func (g *TimestampIDs) NewID(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// SequenceIDs issues prefix-1, prefix-2, ... and is meant for tests and
// deterministic fixtures.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs returns a SequenceIDs starting at 1.
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

// NewID implements IDGenerator.
func (g *SequenceIDs) NewID(time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.prefix + strconv.Itoa(g.n)
}

type options struct {
	now Clock
	ids IDGenerator
}

// Option customises a store at construction.
type Option func(*options)

// WithClock replaces the wall clock used for created_at and timestamps.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.now = c
		}
	}
}

// WithIDGenerator replaces the default timestamp id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		if g != nil {
			o.ids = g
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now: time.Now,
		ids: &TimestampIDs{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) stamp() (string, int64) {
	now := o.now()
	return o.ids.NewID(now), now.UnixMilli()
}
