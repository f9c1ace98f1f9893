// Package grammar holds the token patterns of the problem file format and
// the per-section line grammars composed from them.
//
// Tokens tolerate surrounding whitespace. Composite grammars join tokens
// with literal commas and must match a whole line.
package grammar
