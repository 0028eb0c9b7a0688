package chash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/maphash"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// HashFunc adapts a plain function to the Hasher interface
type HashFunc[K any] func(key K) uint64

// Hash calls f(key)
func (f HashFunc[K]) Hash(key K) uint64 {
	return f(key)
}

// Uint32Hasher is a multiplicative hash for uint32 keys: the key times the
// prime 1000000007, truncated to 32 bits
type Uint32Hasher struct{}

func (Uint32Hasher) Hash(key uint32) uint64 {
	return uint64(uint32(uint64(key) * 1000000007))
}

// IntHasher mixes integer keys with the splitmix64 finalizer, which spreads
// sequential keys across the whole table
type IntHasher[K constraints.Integer] struct{}

func (IntHasher[K]) Hash(key K) uint64 {
	x := uint64(key)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// StringHasher hashes strings with xxHash64
type StringHasher struct{}

func (StringHasher) Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// XXH3StringHasher hashes strings with the 64-bit XXH3 variant
type XXH3StringHasher struct{}

func (XXH3StringHasher) Hash(key string) uint64 {
	return xxh3.HashString(key)
}

// NewComparable creates a table for any comparable key type, hashed with a
// randomly seeded maphash.Hasher. Hashes differ between tables, so never
// compare probe layouts across them.
func NewComparable[K comparable, V any](opts ...Option) *Table[K, V, maphash.Hasher[K]] {
	return New[K, V](maphash.NewHasher[K](), opts...)
}
