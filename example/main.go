package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/theflywheel/chash"
)

func main() {
	logger := level.NewFilter(log.NewLogfmtLogger(os.Stderr), level.AllowDebug())

	// uint32 keys and values with the multiplicative hasher
	ht := chash.New[uint32, uint32](chash.Uint32Hasher{}, chash.WithLogger(logger))

	ht.Reserve(100)
	fmt.Printf("Reserved room for 100 entries: %d slots\n", ht.Cap())

	for i := uint32(2); i < 100; i += 2 {
		ht.Insert(i, i*2)
	}
	fmt.Printf("Inserted %d key-value pairs\n", ht.Len())

	for _, key := range []uint32{10, 18, 21, 37} {
		if value, found := ht.Get(key); found {
			fmt.Printf("Key %d => Value %d\n", key, value)
		} else {
			fmt.Printf("Key %d not found\n", key)
		}
	}

	// Insert never overwrites: the first entry stays visible
	ht.Insert(10, 999)
	value, _ := ht.Get(10)
	fmt.Printf("After a second Insert, key 10 => Value %d\n", value)

	ht.Upsert(10, 999)
	value, _ = ht.Get(10)
	fmt.Printf("After Upsert, key 10 => Value %d\n", value)

	// String keys grow the table as they go
	words := chash.New[string, int](chash.StringHasher{}, chash.WithLogger(logger))
	for i, w := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"} {
		words.Insert(w, i)
	}

	st := words.Stats()
	fmt.Printf("Words: %d entries in %d slots, max probe %d\n", st.Len, st.Capacity, st.MaxProbe)

	fmt.Println("Example completed successfully")
}
