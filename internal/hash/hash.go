// Package hash computes stable content fingerprints used to dedupe parsed
// imports and to combine interned symbol identities.
package hash

import (
	"crypto/sha256"

	"github.com/spaolacci/murmur3"
)

// Hash is a 32-byte content fingerprint.
type Hash [32]byte

// Bytes computes the hash of a byte slice.
func Bytes(b []byte) Hash {
	h1, h2 := murmur3.Sum128(b)
	seed := make([]byte, 0, len(b)+16)
	seed = append(seed, b...)
	seed = appendUint64(seed, h1)
	seed = appendUint64(seed, h2)
	return sha256.Sum256(seed)
}

// String computes the hash of a string.
func String(s string) Hash {
	return Bytes([]byte(s))
}

func appendUint64(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// Add combines two hashes commutatively: h.Add(o) == o.Add(h).
func (h Hash) Add(o Hash) Hash {
	var r Hash
	for i := range r {
		r[i] = h[i] + o[i]
	}
	return r
}

// Merge folds o into h positionally. Unlike Add, Merge is not commutative;
// it is used to combine a sequence of child hashes into a parent hash where
// order matters (e.g., statements in a block).
func (h Hash) Merge(o Hash) Hash {
	buf := make([]byte, 0, len(h)+len(o))
	buf = append(buf, h[:]...)
	buf = append(buf, o[:]...)
	return sha256.Sum256(buf)
}
