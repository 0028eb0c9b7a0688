/*
Package chash provides a generic open-addressing hash table with a pluggable
hash function.

The hash function is a type parameter, so calls to it are resolved at compile
time. A hasher is any type with a Hash(K) uint64 method; stateless hashers are
empty structs and cost nothing to store.

Basic usage:

	import "github.com/theflywheel/chash"

	// uint32 keys and values, hashed with the multiplicative Uint32Hasher
	t := chash.New[uint32, uint32](chash.Uint32Hasher{})
	t.Reserve(100)

	for i := uint32(2); i < 100; i += 2 {
		t.Insert(i, i*2)
	}

	if v, ok := t.Get(10); ok {
		fmt.Println("Value:", v) // 20
	}

Hashers:

  - Uint32Hasher: multiplicative hash for uint32 keys
  - IntHasher: splitmix64 finalizer for any integer type
  - StringHasher: xxHash64 for strings
  - XXH3StringHasher: XXH3 for strings
  - HashFunc: adapts a plain func(K) uint64
  - NewComparable: any comparable key, hashed with a seeded maphash

Implementation Details:

The table is a power-of-two array of slots, starting at 8. Collisions are
resolved with linear probing that wraps around the end of the array. Before
every insertion the table doubles and rehashes if half or more of its slots
are occupied, so at least half of the slots are always empty and every probe
sequence ends at an empty slot.

There is no deletion. A slot, once filled, only changes when the whole array
is rebuilt during growth, and lookups rely on that to stop at the first empty
slot.

Insert does not check for an existing entry with the same key. Inserting a
key twice stores a second entry that Get never reaches, because the first
entry sits earlier in the probe chain. Upsert overwrites instead.

A Table is not safe for concurrent use. Guard it with a mutex if it is shared
between goroutines.
*/
package chash
