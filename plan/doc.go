// Package plan defines parsing directives and the plans they compose into.
//
// A Plan is an ordered, immutable sequence of directives built against one
// target struct type. Appending returns a new Plan and never modifies the
// receiver, so a partially built plan can be shared and extended in several
// directions:
//
//	base, _ := plan.New(reflect.TypeOf(LogRow{}))
//	base, _ = base.SeekUntil(" ")
//	withIP, _ := base.Capture(":", "ClientIP", "")
//	withHost, _ := base.Capture(" ", "Host", "")
//
// # Directives
//
//	SeekUntil(needle)         advance past the next needle
//	Capture(needle, slot)     decode the text before the next needle into slot
//	CaptureFixed(n, slot)     decode the next n bytes into slot
//	CaptureRemainder(slot)    decode everything left into slot
//	Move(delta)               shift the cursor by delta
//	SeekBackUntil(needle)     scan backwards for needle, land just past it
//	Fallback(handler)         run handler when a directive fails
//
// # Shape Rules
//
// Every append is checked immediately, before any parsing happens:
//
//   - nothing may follow a Fallback, so there is at most one
//   - only a Fallback may follow a CaptureRemainder, so there is at most one
//   - a capture's slot must belong to the plan's target type
//
// Violations are errors of kind plan_shape or invalid_slot in the plan phase.
// Empty needles and non-positive counts are rejected when the directive is
// constructed.
package plan
