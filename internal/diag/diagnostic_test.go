package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-lang/lightc/internal/diag"
)

func TestBagAccumulatesInOrder(t *testing.T) {
	var b diag.Bag
	assert.True(t, b.Empty())

	b.Addf(diag.Position{File: "a.lht", Line: 1, Column: 3}, "unexpected token %q", "}")
	b.Addf(diag.Position{File: "a.lht", Line: 2, Column: 1}, "undeclared variable %q", "x")

	assert.False(t, b.Empty())
	assert.True(t, b.HasErrors())
	items := b.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, `a.lht:1:3 unexpected token "}"`, items[0].String())
	assert.Equal(t, `a.lht:2:1 undeclared variable "x"`, items[1].String())
}

func TestBagMerge(t *testing.T) {
	var a, b diag.Bag
	a.Addf(diag.Position{File: "a.lht", Line: 1, Column: 1}, "first")
	b.Addf(diag.Position{File: "b.lht", Line: 2, Column: 2}, "second")
	a.Merge(&b)
	assert.Len(t, a.Items(), 2)
}
