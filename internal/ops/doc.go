// Package ops implements the built-in corruption operations and registers
// them into the capability table.
//
// Every kind ships a portable reference implementation. Four kinds
// (typo, homoglyph, redact, zerowidth) additionally ship an accelerated
// implementation. The two backends of a kind draw from the random source
// in exactly the same sequence, so for identical input, parameters and
// seed they produce byte-identical output. That parity is a correctness
// requirement, not an optimization detail: the engine is free to pick
// either backend without changing results.
package ops
