package schema

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/machine"
	"github.com/wippyai/lineparse/plan"
)

// Build turns the steps into a plan for target. A non-nil onFailure is
// registered as the plan's fallback.
func (s *Schema) Build(target reflect.Type, onFailure plan.Handler) (plan.Plan, error) {
	p, err := plan.New(target)
	if err != nil {
		return plan.Plan{}, err
	}

	for i, st := range s.Steps {
		if p, err = st.apply(p, s.format(st)); err != nil {
			return plan.Plan{}, errors.Wrap(errors.PhaseLoad, errors.KindOf(err), err, fmt.Sprintf("step %d (%s)", i+1, st.Action()))
		}
	}

	if onFailure != nil {
		if p, err = p.Else(onFailure); err != nil {
			return plan.Plan{}, err
		}
	}
	return p, nil
}

// format returns the step's format, falling back to the declared field's.
func (s *Schema) format(st Step) string {
	var into, format string
	switch {
	case st.Take != nil:
		into, format = st.Take.Into, st.Take.Format
	case st.Rest != nil:
		into, format = st.Rest.Into, st.Rest.Format
	}
	if format != "" || into == "" {
		return format
	}
	for _, f := range s.Fields {
		if f.Name == into {
			return f.Format
		}
	}
	return ""
}

func (st Step) apply(p plan.Plan, format string) (plan.Plan, error) {
	switch {
	case st.Until != nil:
		return p.SeekUntil(*st.Until)
	case st.Take != nil && st.Take.Count != 0:
		return p.CaptureFixed(st.Take.Count, st.Take.Into, format)
	case st.Take != nil:
		return p.Capture(st.Take.Until, st.Take.Into, format)
	case st.Rest != nil:
		return p.CaptureRemainder(st.Rest.Into, format)
	case st.Move != nil:
		return p.Move(*st.Move)
	case st.Skip != nil:
		return p.Skip(*st.Skip)
	case st.Back != nil:
		return p.Back(*st.Back)
	case st.BackUntil != nil:
		return p.SeekBackUntil(*st.BackUntil)
	default:
		return plan.Plan{}, errors.PlanShape("step has no action")
	}
}

// Compiled is a schema sealed against its own record type.
type Compiled struct {
	Schema  *Schema
	Type    reflect.Type
	Plan    plan.Plan
	Program *machine.Program
}

// Compile builds the record type, plans the steps against it and seals the
// result.
func (s *Schema) Compile(onFailure plan.Handler) (*Compiled, error) {
	rt, err := s.RecordType()
	if err != nil {
		return nil, err
	}
	p, err := s.Build(rt, onFailure)
	if err != nil {
		return nil, err
	}

	c := &Compiled{Schema: s, Type: rt, Plan: p, Program: machine.Seal(p)}
	Logger().Debug("compiled schema",
		zap.String("name", s.Name),
		zap.Int("fields", rt.NumField()),
		zap.Int("steps", len(s.Steps)))
	return c, nil
}

// New allocates a zeroed record and returns a pointer to it.
func (c *Compiled) New() any {
	return reflect.New(c.Type).Interface()
}

// Parse parses line into a fresh record. The record is returned even when a
// fallback ran or decoding failed, holding whatever was written.
func (c *Compiled) Parse(line string) (any, error) {
	rec := c.New()
	return rec, c.Program.Run(line, rec)
}
