package ast

import "github.com/light-lang/lightc/internal/diag"

// Position is the source span carried by every AST node (spec §3.3).
type Position = diag.Position
