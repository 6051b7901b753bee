package tracknum

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Generator issues tracking numbers guaranteed unique across all calls.
type Generator interface {
	Next(ctx context.Context) (string, error)
}

// Format renders a tracking number as AP-YYYY-NNNNNN.
func Format(year int, seq int64) string {
	return fmt.Sprintf("AP-%d-%06d", year, seq)
}

// RedisGenerator allocates tracking numbers from a per-year Redis counter,
// making them collision-free across processes.
type RedisGenerator struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisGenerator builds a generator. A nil clock defaults to time.Now.
func NewRedisGenerator(client *redis.Client, now func() time.Time) *RedisGenerator {
	if now == nil {
		now = time.Now
	}
	return &RedisGenerator{client: client, now: now}
}

// Next increments the current year's sequence and formats the number.
func (g *RedisGenerator) Next(ctx context.Context) (string, error) {
	year := g.now().Year()
	seq, err := g.client.Incr(ctx, fmt.Sprintf("appeal:seq:%d", year)).Result()
	if err != nil {
		return "", fmt.Errorf("allocate tracking number: %w", err)
	}
	return Format(year, seq), nil
}

// MemoryGenerator is a process-local counter for tests and redis-less
// development. Not safe across processes.
type MemoryGenerator struct {
	mu  sync.Mutex
	seq map[int]int64
	now func() time.Time
}

// NewMemoryGenerator builds a generator. A nil clock defaults to time.Now.
func NewMemoryGenerator(now func() time.Time) *MemoryGenerator {
	if now == nil {
		now = time.Now
	}
	return &MemoryGenerator{seq: make(map[int]int64), now: now}
}

// Next increments the in-memory sequence for the current year.
func (g *MemoryGenerator) Next(_ context.Context) (string, error) {
	year := g.now().Year()
	g.mu.Lock()
	g.seq[year]++
	seq := g.seq[year]
	g.mu.Unlock()
	return Format(year, seq), nil
}
