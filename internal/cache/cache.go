// Package cache memoises generated step sequences by request key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/awmpietro/algoviz/internal/step"
)

// InMemory is a bounded process-local cache. Once max entries are stored new
// keys are computed but not retained. Concurrent misses on one key share a
// single computation.
type InMemory struct {
	mu    sync.RWMutex
	max   int
	items map[string]step.Sequence
	group singleflight.Group
}

func NewInMemory(max int) *InMemory {
	return &InMemory{
		max:   max,
		items: make(map[string]step.Sequence, max),
	}
}

// GetOrCompute returns the cached sequence for key or runs fn. Errors and
// panics from fn are returned to every waiter and never cached. Returned
// sequences are shared and must not be modified.
func (c *InMemory) GetOrCompute(ctx context.Context, key string, fn func() (step.Sequence, error)) (step.Sequence, error) {
	k := hash(key)

	c.mu.RLock()
	if v, ok := c.items[k]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	ch := c.group.DoChan(k, func() (any, error) {
		c.mu.RLock()
		v, ok := c.items[k]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		seq, err := safeCompute(fn)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if len(c.items) < c.max {
			c.items[k] = seq
		}
		c.mu.Unlock()
		return seq, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return step.Sequence{}, res.Err
		}
		return res.Val.(step.Sequence), nil
	case <-ctx.Done():
		return step.Sequence{}, ctx.Err()
	}
}

// Len reports the number of retained entries.
func (c *InMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func safeCompute(fn func() (step.Sequence, error)) (seq step.Sequence, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sequence computation panicked: %v", r)
		}
	}()
	return fn()
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
