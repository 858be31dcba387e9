// Package machine lowers a plan.Plan into a Program for a small cursor
// machine and executes it.
//
// A Program is a flat instruction list. Each instruction carries an opcode,
// its needle or count, and for captures a writer pre-built from the slot's
// kind and offset, so Run does no reflection beyond checking the target
// pointer.
//
// Execution keeps a single cursor into the input:
//
//	seek       advance past the next needle
//	capture    decode up to the next needle, advance past it
//	take       decode the next n bytes
//	rest       decode everything after the cursor
//	move       shift the cursor; the new cursor must lie in [0, len)
//	seekback   scan backwards for a needle, land after it
//
// A structural failure (needle not found, cursor out of range) invokes the
// plan's fallback once and ends the run with a nil error. A decode failure
// ends the run and is returned; the fallback is not called. Fields written
// before either failure keep their values.
//
// Programs are immutable and safe for concurrent use with distinct targets.
// Captured string slots alias the input.
package machine
