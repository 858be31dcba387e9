// Package schema loads parsing plans from YAML documents.
//
// A document names its steps and, optionally, the fields of a record type
// that is built at runtime:
//
//	name: access
//	fields:
//	  - {name: client_ip, type: string}
//	  - {name: bytes, type: "i32?"}
//	  - {name: created, type: time, format: "02/Jan/2006:15:04:05.000"}
//	steps:
//	  - until: " "
//	  - take: {until: ":", into: client_ip}
//	  - take: {count: 4, into: state}
//	  - rest: {into: tail}
//	  - move: -4
//	  - skip: 2
//	  - back: 2
//	  - back_until: "hello"
//
// Field types are the slot kind names (string, bool, i8 to i64, u8 to u64,
// f32, f64, decimal, time, duration, uuid). A trailing "?" makes the field
// optional. Enums need a Go type and are only available through Build with a
// static target. A field's format is used by steps into it that set none.
//
// Every step sets exactly one action. take sets exactly one of until and
// count.
package schema
