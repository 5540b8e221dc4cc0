package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultReferencePrefix is used when no prefix is configured
const DefaultReferencePrefix = "GTS"

// counterSeed is the value assumed when the counter has never been written,
// so the first reference of a fresh install ends in 1001.
const counterSeed int64 = 1000

// CounterStore persists the reference sequence.
// ReadCounter reports false when no value has been stored yet.
type CounterStore interface {
	ReadCounter(ctx context.Context) (int64, bool)
	WriteCounter(ctx context.Context, value int64)
}

// ReferenceGenerator issues human-readable parcel references of the form PREFIX-YYYYMMDD-NNNN
type ReferenceGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter CounterStore
	now     func() time.Time
	last    int64 // highest sequence issued by this generator
}

// NewReferenceGenerator creates a generator over the given counter store.
// A nil clock means time.Now.
func NewReferenceGenerator(prefix string, counter CounterStore, now func() time.Time) *ReferenceGenerator {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	if now == nil {
		now = time.Now
	}
	return &ReferenceGenerator{prefix: prefix, counter: counter, now: now}
}

// Next issues a reference dated with the generator's clock
func (g *ReferenceGenerator) Next(ctx context.Context) string {
	return g.NextAt(ctx, g.now())
}

// NextAt increments the persisted counter once and formats the new reference.
// The date part is the UTC calendar date of at. The sequence never falls back
// below one this generator already issued, even if the counter write was lost.
func (g *ReferenceGenerator) NextAt(ctx context.Context, at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.counter.ReadCounter(ctx)
	if !ok {
		current = counterSeed
	}
	if g.last > current {
		current = g.last
	}
	next := current + 1
	g.counter.WriteCounter(ctx, next)
	g.last = next

	return FormatReference(g.prefix, at.UTC(), next)
}

// FormatReference renders a reference; the sequence is zero-padded to four digits and widens past 9999.
func FormatReference(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d%02d%02d-%04d", prefix, date.Year(), int(date.Month()), date.Day(), seq)
}

// NewRecordID returns a random v4 UUID in canonical form
func NewRecordID() string {
	return uuid.NewString()
}
