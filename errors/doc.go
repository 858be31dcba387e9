// Package errors provides structured error types for the lineparse library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the slot path, the Go type involved, the offending value and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePlan, errors.KindInvalidSlot).
//		Path("Bytes").
//		GoType("chan int").
//		Detail("not a supported type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidNeedle(errors.PhasePlan, "until")
//	err := errors.Overflow(errors.PhaseDecode, path, "256", "u8")
//
// Errors raised while building a plan (PhasePlan) are construction errors. Errors
// raised while decoding a captured span (PhaseDecode) are decode faults: they are
// never routed to a plan's fallback handler and reach the caller of the parser.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
