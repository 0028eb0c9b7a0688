package chash

import (
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	minCapacity = 8
	maxCapacity = math.MaxInt>>1 + 1
)

// Hasher maps a key to a raw hash. The table reduces it modulo its capacity,
// so Hash only needs to be a deterministic function of the key
type Hasher[K any] interface {
	Hash(key K) uint64
}

type slot[K comparable, V any] struct {
	key      K
	value    V
	occupied bool
}

// Table is an open-addressing hash table using linear probing.
//
// A Table is not safe for concurrent use. Slots are never cleared once
// filled, which is what lets a lookup stop at the first empty slot.
type Table[K comparable, V any, H Hasher[K]] struct {
	hasher H
	slots  []slot[K, V]
	count  int
	logger log.Logger
}

// New creates an empty table with the minimum capacity of 8 slots
func New[K comparable, V any, H Hasher[K]](hasher H, opts ...Option) *Table[K, V, H] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	t := &Table[K, V, H]{
		hasher: hasher,
		slots:  make([]slot[K, V], minCapacity),
		logger: o.logger,
	}
	if o.capacity > 0 {
		t.Reserve(o.capacity)
	}
	return t
}

// Len returns the number of occupied slots, shadowed duplicates included
func (t *Table[K, V, H]) Len() int {
	return t.count
}

// Cap returns the number of slots
func (t *Table[K, V, H]) Cap() int {
	return len(t.slots)
}

// Reserve grows the table so that n entries fit without triggering growth.
// It never shrinks the table.
func (t *Table[K, V, H]) Reserve(n int) {
	if n >= maxCapacity/2 {
		n = maxCapacity/2 - 1
	}
	if n*2 < len(t.slots) {
		return
	}

	capacity := len(t.slots)
	for n*2 >= capacity {
		capacity *= 2
	}
	t.grow(capacity)
}

// Insert stores value under key.
//
// Insert does not look for an existing entry. Inserting a key twice leaves
// two entries, and Get keeps returning the first one. Use Upsert to
// overwrite.
func (t *Table[K, V, H]) Insert(key K, value V) {
	// Keep at least half of the slots empty so probing always terminates
	if t.count*2 >= len(t.slots) {
		t.grow(len(t.slots) * 2)
	}
	t.place(key, value)
}

// Upsert overwrites the value of an existing key or inserts a new entry.
// It reports whether an existing entry was replaced.
func (t *Table[K, V, H]) Upsert(key K, value V) bool {
	if i, ok := t.find(key); ok {
		t.slots[i].value = value
		return true
	}
	t.Insert(key, value)
	return false
}

// Get returns a copy of the value stored under key
func (t *Table[K, V, H]) Get(key K) (V, bool) {
	if i, ok := t.find(key); ok {
		return t.slots[i].value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present
func (t *Table[K, V, H]) Contains(key K) bool {
	_, ok := t.find(key)
	return ok
}

func (t *Table[K, V, H]) home(key K) int {
	return int(t.hasher.Hash(key) % uint64(len(t.slots)))
}

// find walks the probe chain of key. The walk is bounded by the capacity
// even though the load factor guarantees an empty slot.
func (t *Table[K, V, H]) find(key K) (int, bool) {
	n := len(t.slots)
	i := t.home(key)
	for probes := 0; probes < n; probes++ {
		s := &t.slots[i]
		if !s.occupied {
			return 0, false
		}
		if s.key == key {
			return i, true
		}
		i = (i + 1) % n
	}
	return 0, false
}

// place puts the pair in the first empty slot of its probe chain.
// The caller guarantees that an empty slot exists.
func (t *Table[K, V, H]) place(key K, value V) {
	n := len(t.slots)
	i := t.home(key)
	for t.slots[i].occupied {
		i = (i + 1) % n
	}
	t.slots[i] = slot[K, V]{key: key, value: value, occupied: true}
	t.count++
}

// grow replaces the slot array with one of the given capacity and rehashes
// every entry into it, in old slot order
func (t *Table[K, V, H]) grow(capacity int) {
	if capacity <= len(t.slots) {
		return
	}

	level.Debug(t.logger).Log("msg", "growing table", "from", len(t.slots), "to", capacity, "entries", t.count)

	old := t.slots
	t.slots = make([]slot[K, V], capacity)
	t.count = 0
	for i := range old {
		if old[i].occupied {
			t.place(old[i].key, old[i].value)
		}
	}
}
