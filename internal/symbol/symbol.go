// Package symbol interns identifiers into small integer IDs so that scope
// frames and symbol tables throughout the type checker can use cheap
// comparisons and map keys instead of raw strings.
package symbol

import (
	"sync"

	"github.com/grailbio/base/log"

	"github.com/light-lang/lightc/internal/hash"
)

// ID represents an interned identifier.
type ID int32

// Invalid is the zero ID; it never names a real symbol.
const Invalid = ID(0)

type table struct {
	mu    sync.RWMutex
	byStr map[string]ID
	byID  []string // byID[0] is unused (Invalid)
}

var symbols = newTable()

func newTable() *table {
	return &table{
		byStr: map[string]ID{},
		byID:  []string{"(invalid)"},
	}
}

// Intern finds or creates the ID for v. Interning the same string always
// returns the same ID within a process.
func Intern(v string) ID {
	if v == "" {
		log.Panicf("symbol: cannot intern an empty identifier")
	}

	symbols.mu.RLock()
	if id, ok := symbols.byStr[v]; ok {
		symbols.mu.RUnlock()
		return id
	}
	symbols.mu.RUnlock()

	symbols.mu.Lock()
	defer symbols.mu.Unlock()
	if id, ok := symbols.byStr[v]; ok {
		return id
	}
	id := ID(len(symbols.byID))
	symbols.byID = append(symbols.byID, v)
	symbols.byStr[v] = id
	return id
}

// String returns the interned text for id.
func (id ID) String() string {
	symbols.mu.RLock()
	defer symbols.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(symbols.byID) {
		log.Panicf("symbol: id %d not found", id)
	}
	return symbols.byID[id]
}

// Hash returns a content hash of the symbol's text, stable across calls
// within a process.
func (id ID) Hash() hash.Hash {
	return hash.String(id.String())
}

// resetForTest clears the intern table. It exists only so tests in this
// package can start from a known state; production code never calls it.
func resetForTest() {
	symbols = newTable()
}
