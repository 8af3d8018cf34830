// Package store provides the in-memory entity store. Records live for the
// lifetime of the process; ids come from a per-collection counter and are
// never reused.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// NoLimit makes List return every record.
const NoLimit = -1

// Patch is a partial update keyed by JSON field name. A key mapped to a JSON
// null overwrites the stored value; absent keys leave it untouched.
type Patch map[string]json.RawMessage

// Hooks carry the per-kind rules the collection applies on write.
type Hooks[T any] struct {
	// OnCreate assigns the id and stamps creation fields.
	OnCreate func(item *T, id int, now time.Time)
	// OnUpdate restores immutable fields from prev after a merge.
	OnUpdate func(prev T, next *T, now time.Time)
}

// Collection is an insertion-ordered set of records of one kind
type Collection[T any] struct {
	mu     sync.RWMutex
	items  map[int]T
	order  []int
	nextID int
	hooks  Hooks[T]
	now    func() time.Time
}

// NewCollection creates an empty collection whose first id is 1
func NewCollection[T any](hooks Hooks[T], now func() time.Time) *Collection[T] {
	if now == nil {
		now = time.Now
	}
	return &Collection[T]{
		items:  make(map[int]T),
		nextID: 1,
		hooks:  hooks,
		now:    now,
	}
}

// Get returns the record with the given id. The bool is false when absent.
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// List returns records in creation order. A non-negative limit returns the
// first limit records of that order, i.e. the oldest ones.
func (c *Collection[T]) List(limit int) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.order)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]T, 0, n)
	for _, id := range c.order[:n] {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of stored records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Each calls fn for every record in creation order until fn returns false
func (c *Collection[T]) Each(fn func(T) bool) {
	for _, item := range c.List(NoLimit) {
		if !fn(item) {
			return
		}
	}
}

// Create assigns the next id, stamps creation fields and stores the record
func (c *Collection[T]) Create(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	if c.hooks.OnCreate != nil {
		c.hooks.OnCreate(&item, id, c.now())
	}
	c.items[id] = item
	c.order = append(c.order, id)
	return item
}

// Update shallow-merges patch over the stored record. The bool is false when
// no record has the id; the error is set only when the patch does not decode
// into the record type.
func (c *Collection[T]) Update(id int, patch Patch) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	prev, ok := c.items[id]
	if !ok {
		return zero, false, nil
	}

	next, err := merge(prev, patch)
	if err != nil {
		return zero, true, fmt.Errorf("merge record %d: %w", id, err)
	}
	if c.hooks.OnUpdate != nil {
		c.hooks.OnUpdate(prev, &next, c.now())
	}
	c.items[id] = next
	return next, true, nil
}

// Delete removes the record and reports whether it existed
func (c *Collection[T]) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// merge re-encodes prev as a JSON object, overlays patch and decodes the
// result into a fresh value, so keys set to null come back as zero values.
func merge[T any](prev T, patch Patch) (T, error) {
	var next T

	raw, err := json.Marshal(prev)
	if err != nil {
		return next, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return next, err
	}
	for k, v := range patch {
		fields[k] = v
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return next, err
	}
	if err := json.Unmarshal(raw, &next); err != nil {
		return next, err
	}
	return next, nil
}

// PatchOf encodes v as a Patch. Used to build updates from typed values.
func PatchOf(v any) (Patch, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}
