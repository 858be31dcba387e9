package plan

import (
	"reflect"
	"strings"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

// Plan is an immutable, ordered sequence of directives for one target type.
// The zero Plan has no target and rejects every append; use New.
type Plan struct {
	target      reflect.Type
	directives  []Directive
	hasRest     bool
	hasFallback bool
}

// New returns an empty plan for the struct type target.
func New(target reflect.Type) (Plan, error) {
	if target == nil {
		return Plan{}, errors.NilPointer(errors.PhasePlan, nil, "reflect.Type")
	}
	if target.Kind() != reflect.Struct {
		return Plan{}, errors.TypeMismatch(errors.PhasePlan, nil, target.String(), "struct type")
	}
	return Plan{target: target}, nil
}

// Append returns a new plan with d added at the end.
func (p Plan) Append(d Directive) (Plan, error) {
	if p.target == nil {
		return Plan{}, errors.NilPointer(errors.PhasePlan, nil, "plan target")
	}
	if d == nil {
		return Plan{}, errors.New(errors.PhasePlan, errors.KindNilPointer).
			Detail("directive cannot be nil").
			Build()
	}
	if err := d.validate(); err != nil {
		return Plan{}, err
	}
	if err := p.checkShape(d); err != nil {
		return Plan{}, err
	}
	if s := slotOf(d); s != nil && s.Owner != p.target {
		return Plan{}, errors.InvalidSlot(s.Path(), s.GoType.String(), "must be on %s", p.target)
	}

	next := Plan{
		target:      p.target,
		directives:  make([]Directive, len(p.directives)+1),
		hasRest:     p.hasRest,
		hasFallback: p.hasFallback,
	}
	copy(next.directives, p.directives)
	next.directives[len(p.directives)] = d

	switch d.(type) {
	case CaptureRemainder:
		next.hasRest = true
	case Fallback:
		next.hasFallback = true
	}
	return next, nil
}

// Concat splices q's directives after p's. Both plans must share a target.
func (p Plan) Concat(q Plan) (Plan, error) {
	if q.target != nil && p.target != q.target {
		var got string
		if p.target != nil {
			got = p.target.String()
		}
		return Plan{}, errors.TypeMismatch(errors.PhasePlan, nil, got, q.target.String())
	}

	out := p
	for _, d := range q.directives {
		var err error
		if out, err = out.Append(d); err != nil {
			return Plan{}, err
		}
	}
	return out, nil
}

func (p Plan) checkShape(d Directive) error {
	if p.hasFallback {
		return errors.PlanShape("no directive can follow an else")
	}
	if _, isFallback := d.(Fallback); p.hasRest && !isFallback {
		return errors.PlanShape("no directive other than else can follow a take rest")
	}
	return nil
}

func slotOf(d Directive) *slot.Slot {
	switch v := d.(type) {
	case Capture:
		return v.Slot
	case CaptureFixed:
		return v.Slot
	case CaptureRemainder:
		return v.Slot
	}
	return nil
}

// Target returns the struct type the plan writes into.
func (p Plan) Target() reflect.Type {
	return p.target
}

// Len returns the number of directives.
func (p Plan) Len() int {
	return len(p.directives)
}

// Directives returns a copy of the plan's directives.
func (p Plan) Directives() []Directive {
	out := make([]Directive, len(p.directives))
	copy(out, p.directives)
	return out
}

// Handler returns the registered fallback handler, or nil.
func (p Plan) Handler() Handler {
	if !p.hasFallback {
		return nil
	}
	return p.directives[len(p.directives)-1].(Fallback).Handler
}

// HasFallback reports whether the plan ends with an else directive.
func (p Plan) HasFallback() bool {
	return p.hasFallback
}

func (p Plan) String() string {
	var b strings.Builder
	switch {
	case p.target == nil:
		b.WriteString("plan <nil>")
	case p.target.Name() == "":
		b.WriteString("plan record")
	default:
		b.WriteString("plan ")
		b.WriteString(p.target.String())
	}
	for _, d := range p.directives {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}
