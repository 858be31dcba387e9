package lineparse

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/machine"
	"github.com/wippyai/lineparse/plan"
	"github.com/wippyai/lineparse/slot"
)

// Integer is the set of types that can back an enum.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RegisterEnum records the member names of E. Names match case-insensitively;
// numeric spans still decode to their value.
func RegisterEnum[E Integer](members map[string]E) error {
	m := make(map[string]int64, len(members))
	for name, v := range members {
		m[name] = int64(v)
	}
	return slot.RegisterEnum(reflect.TypeOf((*E)(nil)).Elem(), m)
}

// Builder assembles a plan for T. Every call returns a new Builder and leaves
// the receiver untouched, so a shared prefix can be branched. The first error
// is kept and every later call is a no-op.
type Builder[T any] struct {
	plan plan.Plan
	err  error
}

// New starts an empty plan for the struct type T.
func New[T any]() *Builder[T] {
	p, err := plan.New(reflect.TypeOf((*T)(nil)).Elem())
	return &Builder[T]{plan: p, err: err}
}

func (b *Builder[T]) apply(f func(plan.Plan) (plan.Plan, error)) *Builder[T] {
	if b.err != nil {
		return b
	}
	next, err := f(b.plan)
	return &Builder[T]{plan: next, err: err}
}

// Until advances past the next needle.
func (b *Builder[T]) Until(needle string) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) { return p.SeekUntil(needle) })
}

// Take captures up to the next needle into field.
func (b *Builder[T]) Take(until, field string, format ...string) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) {
		f, err := single(field, format)
		if err != nil {
			return plan.Plan{}, err
		}
		return p.Capture(until, field, f)
	})
}

// TakeN captures the next n bytes into field.
func (b *Builder[T]) TakeN(n int, field string, format ...string) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) {
		f, err := single(field, format)
		if err != nil {
			return plan.Plan{}, err
		}
		return p.CaptureFixed(n, field, f)
	})
}

// TakeRest captures the rest of the line into field.
func (b *Builder[T]) TakeRest(field string, format ...string) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) {
		f, err := single(field, format)
		if err != nil {
			return plan.Plan{}, err
		}
		return p.CaptureRemainder(field, f)
	})
}

// Skip moves the cursor forward by n bytes.
func (b *Builder[T]) Skip(n int) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) { return p.Skip(n) })
}

// Back moves the cursor backward by n bytes.
func (b *Builder[T]) Back(n int) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) { return p.Back(n) })
}

// BackUntil scans backwards from the cursor and lands just after needle.
func (b *Builder[T]) BackUntil(needle string) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) { return p.SeekBackUntil(needle) })
}

// Move shifts the cursor by delta. The cursor must stay inside the line.
func (b *Builder[T]) Move(delta int) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) { return p.Move(delta) })
}

// Else sets the handler called when a directive cannot complete. It must be
// the last call.
func (b *Builder[T]) Else(h func(line string, target *T)) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) {
		if h == nil {
			return p.Else(nil)
		}
		return p.Else(func(line string, target any) { h(line, target.(*T)) })
	})
}

// Append adds other's directives after b's.
func (b *Builder[T]) Append(other *Builder[T]) *Builder[T] {
	return b.apply(func(p plan.Plan) (plan.Plan, error) {
		if other == nil {
			return plan.Plan{}, errors.NilPointer(errors.PhasePlan, nil, "*lineparse.Builder")
		}
		if other.err != nil {
			return plan.Plan{}, other.err
		}
		return p.Concat(other.plan)
	})
}

// Err returns the first error recorded by the builder.
func (b *Builder[T]) Err() error {
	return b.err
}

// Plan returns the plan built so far.
func (b *Builder[T]) Plan() (plan.Plan, error) {
	if b.err != nil {
		return plan.Plan{}, b.err
	}
	return b.plan, nil
}

// Seal compiles the builder's plan.
func (b *Builder[T]) Seal() (*Parser[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	return Seal[T](b.plan)
}

func single(field string, format []string) (string, error) {
	switch len(format) {
	case 0:
		return "", nil
	case 1:
		return format[0], nil
	default:
		return "", errors.New(errors.PhasePlan, errors.KindInvalidFormat).
			Path(field).
			Detail("at most one format, got %d", len(format)).
			Build()
	}
}

// Parser is a sealed plan for T.
type Parser[T any] struct {
	prog *machine.Program
}

// Seal compiles p, which must have been built for T.
func Seal[T any](p plan.Plan) (*Parser[T], error) {
	want := reflect.TypeOf((*T)(nil)).Elem()
	if p.Target() != want {
		var got string
		if p.Target() != nil {
			got = p.Target().String()
		}
		return nil, errors.TypeMismatch(errors.PhaseSeal, nil, got, want.String())
	}
	return &Parser[T]{prog: machine.Seal(p)}, nil
}

// Parse fills target from line. See the package documentation for how
// failures are reported.
func (p *Parser[T]) Parse(line string, target *T) error {
	if target == nil {
		return errors.NilPointer(errors.PhaseExec, nil, "*"+p.prog.Target().String())
	}
	return p.prog.RunUnsafe(line, target, unsafe.Pointer(target))
}

// Func returns Parse as a plain function.
func (p *Parser[T]) Func() func(line string, target *T) error {
	return p.Parse
}

// Program returns the sealed program.
func (p *Parser[T]) Program() *machine.Program {
	return p.prog
}
