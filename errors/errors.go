package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhasePlan   Phase = "plan"   // directive and plan construction
	PhaseSeal   Phase = "seal"   // lowering a plan into a program
	PhaseExec   Phase = "exec"   // program invocation contract
	PhaseDecode Phase = "decode" // typed decoding of a captured span
	PhaseLoad   Phase = "load"   // schema loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidSlot     Kind = "invalid_slot"
	KindInvalidFormat   Kind = "invalid_format"
	KindInvalidNeedle   Kind = "invalid_needle"
	KindInvalidCount    Kind = "invalid_count"
	KindPlanShape       Kind = "plan_shape"
	KindTypeMismatch    Kind = "type_mismatch"
	KindNilPointer      Kind = "nil_pointer"
	KindUnsupported     Kind = "unsupported"
	KindInvalidData     Kind = "invalid_data"
	KindMalformedNumber Kind = "malformed_number"
	KindOverflow        Kind = "overflow"
	KindUnknownEnumName Kind = "unknown_enum_name"
	KindMalformedValue  Kind = "malformed_value"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the slot path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidSlot creates an invalid slot error
func InvalidSlot(path []string, goType string, detail string, args ...any) *Error {
	return New(PhasePlan, KindInvalidSlot).Path(path...).GoType(goType).Detail(detail, args...).Build()
}

// InvalidFormat creates an invalid format error
func InvalidFormat(path []string, format string, cause error) *Error {
	return &Error{
		Phase:  PhasePlan,
		Kind:   KindInvalidFormat,
		Path:   path,
		Detail: fmt.Sprintf("format %q is invalid", format),
		Value:  format,
		Cause:  cause,
	}
}

// InvalidNeedle creates an error for an empty needle
func InvalidNeedle(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidNeedle,
		Detail: name + " cannot be empty",
	}
}

// InvalidCount creates an error for a non-positive count
func InvalidCount(phase Phase, op string, n int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCount,
		Detail: fmt.Sprintf("%s expects a positive, non-zero value; found [%d]", op, n),
		Value:  n,
	}
}

// PlanShape creates a plan composition error
func PlanShape(detail string) *Error {
	return &Error{
		Phase:  PhasePlan,
		Kind:   KindPlanShape,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, expected string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: "expected " + expected,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// MalformedNumber creates a decode fault for a span that is not a number
func MalformedNumber(span string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedNumber,
		Detail: fmt.Sprintf("%q: %s", preview(span), detail),
		Value:  preview(span),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// UnknownEnumName creates an error for a span matching no enum member
func UnknownEnumName(span string, enumType string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownEnumName,
		GoType: enumType,
		Detail: fmt.Sprintf("%q is not a member", preview(span)),
		Value:  preview(span),
	}
}

// MalformedValue creates a decode fault for unparsable float, decimal, temporal or identifier text
func MalformedValue(span string, want string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedValue,
		Detail: fmt.Sprintf("%q is not a valid %s", preview(span), want),
		Value:  preview(span),
		Cause:  cause,
	}
}

// WithPath returns a copy of err with path set, or err unchanged when it is not an *Error.
func WithPath(err error, path ...string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.Path = path
	return &cp
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a schema loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsConstruction reports whether err was raised while building a plan.
func IsConstruction(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Phase == PhasePlan
}

// IsDecodeFault reports whether err is a content-level decode fault.
func IsDecodeFault(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Phase == PhaseDecode
}

const maxPreview = 32

func preview(s string) string {
	if len(s) > maxPreview {
		return s[:maxPreview] + "..."
	}
	return s
}
