// Package decode implements the typed decoders run at every capture point.
//
// Each decoder takes a span of the original input (a substring, which in Go
// is a view and never a copy) and produces a typed value or a decode fault.
// Integer and boolean decoding is implemented here directly so that overflow
// behaviour is fully controlled; floating point, decimal, temporal and
// identifier decoding delegate to locale-invariant library parsers.
//
// # Integer Grammar
//
//	[-]digit{digit}
//
// Digits are accumulated left to right into a 64-bit accumulator. Any other
// character is a MalformedNumber fault. The accumulated value is then narrowed
// to the requested width; an out-of-range value is an Overflow fault.
//
// # Boolean Grammar
//
// The boolean grammar is deliberately narrow:
//
//	"1"                    true
//	"true" (any case)      true
//	anything else          false
//
// # Errors
//
// Every failure is an *errors.Error in PhaseDecode. Decoders do not know
// which slot they decode into; callers attach the slot path.
package decode
