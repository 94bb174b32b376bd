package model

// Enum describes a Go backed/unit enumeration discovered either via
// go/types constant declarations (AST mode) or via a package-level
// Values() []T method found through reflection (runtime mode) — the
// duality spec.md §9 calls out between AST and reflection analysis.
type Enum struct {
	Name        string
	GoType      string // "string" or "integer"
	Values      []string
	Description string
}
