package loadgen

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces reproducible keys and values from a seed
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. The same seed yields the same stream.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// UUID returns a random version 4 UUID in its canonical text form
func (g *Generator) UUID() string {
	var b [16]byte
	for i := 0; i < len(b); i += 8 {
		v := g.rng.Uint64()
		for j := 0; j < 8; j++ {
			b[i+j] = byte(v >> (8 * j))
		}
	}
	// Set version (4) and variant (RFC4122)
	b[6] = (b[6] & 0x0F) | 0x40
	b[8] = (b[8] & 0x3F) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// Alphanumeric returns a random string of n characters from [a-zA-Z0-9]
func (g *Generator) Alphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[g.rng.Intn(len(charset))]
	}
	return string(b)
}

// Uint64 returns a random 64-bit integer
func (g *Generator) Uint64() uint64 {
	return g.rng.Uint64()
}

// Perm returns a random permutation of [0, n)
func (g *Generator) Perm(n int) []int {
	return g.rng.Perm(n)
}
