// Package lineparse compiles declarative parsing plans for single lines of
// text into reusable parsers that fill Go structs.
//
// A plan is an ordered list of directives over a cursor: skip to a needle,
// capture up to a needle, capture a fixed width or the remainder, move the
// cursor, or scan backwards. Captures decode the span into a typed struct
// field. Plans are validated as they are built and sealed once into a program
// that runs without reflection.
//
// # Architecture Overview
//
//	lineparse/           Generic builder, Parser[T] and enum registration
//	├── plan/            Directive values and the persistent Plan
//	├── slot/            Field resolution, decode kinds, enum registry
//	├── decode/          Span decoders for every supported kind
//	├── machine/         Sealing plans into programs and running them
//	├── schema/          YAML plan documents and dynamic record types
//	├── errors/          Structured error types
//	└── cmd/lineparse/   Command line runner, explainer and interactive tryout
//
// # Quick Start
//
//	type Hit struct {
//	    ClientIP string
//	    Port     uint16
//	    Bytes    *int64
//	}
//
//	p, err := lineparse.New[Hit]().
//	    Until(" ").
//	    Take(":", "ClientIP").
//	    Take(" ", "Port").
//	    TakeRest("Bytes").
//	    Else(func(line string, h *Hit) { log.Printf("skipped %q", line) }).
//	    Seal()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var h Hit
//	if err := p.Parse(line, &h); err != nil {
//	    log.Printf("bad field: %v", err)
//	}
//
// # Failures
//
// A directive that cannot complete (needle missing, cursor out of range)
// calls the Else handler once and Parse returns nil. A span that does not
// decode into its field makes Parse return an error from the errors package
// with PhaseDecode; the handler is not called. In both cases fields already
// written stay written.
//
// # Slots
//
// Fields are matched by `parse:"name"` tag, then exact name, then
// case-insensitively. Pointer fields are optional: an empty capture leaves
// them nil. Supported kinds are string, bool, all sized integers, float32,
// float64, decimal.Decimal, time.Time, time.Duration, uuid.UUID and integer
// enums registered with RegisterEnum. Only time, duration and uuid slots take
// a format.
//
// # Thread Safety
//
// Builders are not safe for concurrent use. Plans and Parsers are immutable;
// a Parser may be shared by any number of goroutines parsing into distinct
// targets.
package lineparse
