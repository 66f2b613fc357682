package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-lang/lightc/internal/hash"
)

func TestBytesAndStringAreNonZero(t *testing.T) {
	assert.NotEqual(t, hash.Bytes(nil), hash.Hash{})
	assert.NotEqual(t, hash.String(""), hash.Hash{})
}

func TestAddIsCommutative(t *testing.T) {
	a := hash.String("fn main")
	b := hash.String("let x: number = 1;")

	assert.Equal(t, hash.Hash{}.Add(a), a)
	assert.Equal(t, a.Add(hash.Hash{}), a)
	assert.Equal(t, a.Add(b), b.Add(a))
	assert.NotEqual(t, a.Add(a), hash.Hash{})
}

func TestMergeIsOrderSensitive(t *testing.T) {
	a := hash.String("a")
	b := hash.String("b")

	assert.NotEqual(t, a.Merge(b), b.Merge(a))
	assert.NotEqual(t, a.Merge(b), hash.Hash{})
}
