package plan

import (
	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

// The methods below construct a directive, resolving field names against the
// plan's target type, and append it.

func (p Plan) SeekUntil(needle string) (Plan, error) {
	d, err := NewSeekUntil(needle)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) Capture(needle, field, format string) (Plan, error) {
	s, err := slot.Resolve(p.target, field, format)
	if err != nil {
		return Plan{}, err
	}
	d, err := NewCapture(needle, s)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) CaptureFixed(n int, field, format string) (Plan, error) {
	if n <= 0 {
		return Plan{}, errors.InvalidCount(errors.PhasePlan, "Take", n)
	}
	s, err := slot.Resolve(p.target, field, format)
	if err != nil {
		return Plan{}, err
	}
	d, err := NewCaptureFixed(n, s)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) CaptureRemainder(field, format string) (Plan, error) {
	s, err := slot.Resolve(p.target, field, format)
	if err != nil {
		return Plan{}, err
	}
	d, err := NewCaptureRemainder(s)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) Move(delta int) (Plan, error) {
	d, err := NewMove(delta)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) Skip(n int) (Plan, error) {
	d, err := NewSkip(n)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) Back(n int) (Plan, error) {
	d, err := NewBack(n)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

func (p Plan) SeekBackUntil(needle string) (Plan, error) {
	d, err := NewSeekBackUntil(needle)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}

// Else registers h as the plan's fallback.
func (p Plan) Else(h Handler) (Plan, error) {
	d, err := NewFallback(h)
	if err != nil {
		return Plan{}, err
	}
	return p.Append(d)
}
