// Package slot resolves the writable struct fields a parser decodes into.
//
// A Slot is resolved once, when a plan is built, and carries everything the
// compiled program needs to write a decoded value without touching reflection
// again: the field offset, the decode Kind and whether the field is optional.
//
// # Field Resolution
//
// Fields are matched by, in order: a `parse:"name"` struct tag, the exact Go
// field name, then a case-insensitive field name. A `parse:"-"` tag hides a
// field. Only exported fields declared directly on the target struct are
// writable slots; fields promoted from embedded structs are rejected.
//
// # Optional Slots
//
// A pointer field (*int32, *time.Time, ...) is an optional slot. An empty
// capture sets it to nil; any other capture allocates a new value.
//
// # Formats
//
// Only time, duration and uuid slots accept a format. Time and duration
// formats use Go reference-time layouts; uuid formats name a text style
// (canonical, hex, braced, urn). Formats are validated by a format-then-parse
// round trip when the slot is resolved.
package slot
