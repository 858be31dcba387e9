package machine

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/wippyai/lineparse/errors"
)

// Run parses input into target, which must be a non-nil pointer to the
// program's target struct.
//
// It returns nil when every instruction succeeds and when a structural
// failure was handed to the fallback (or ignored, without one). Decode
// failures are returned.
func (p *Program) Run(input string, target any) error {
	if target == nil {
		return errors.NilPointer(errors.PhaseExec, nil, "*"+p.target.String())
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Type().Elem() != p.target {
		return errors.TypeMismatch(errors.PhaseExec, nil, rv.Type().String(), "*"+p.target.String())
	}
	if rv.IsNil() {
		return errors.NilPointer(errors.PhaseExec, nil, rv.Type().String())
	}

	_, err := p.exec(input, target, rv.UnsafePointer())
	return err
}

// RunUnsafe is Run without the target check. base must point to a value of
// the program's target type.
func (p *Program) RunUnsafe(input string, target any, base unsafe.Pointer) error {
	_, err := p.exec(input, target, base)
	return err
}

func (p *Program) exec(input string, target any, base unsafe.Pointer) (outcome, error) {
	length := len(input)
	cursor := 0

	for i := range p.code {
		in := &p.code[i]
		ok := true

		switch in.op {
		case opSeek:
			idx := strings.Index(input[cursor:], in.needle)
			if idx < 0 {
				ok = false
				break
			}
			cursor += idx + len(in.needle)

		case opCapture:
			idx := strings.Index(input[cursor:], in.needle)
			if idx < 0 {
				ok = false
				break
			}
			if err := in.w.store(base, input[cursor:cursor+idx]); err != nil {
				return outcomeFault, err
			}
			cursor += idx + len(in.needle)

		case opTake:
			if in.n > length-cursor {
				ok = false
				break
			}
			if err := in.w.store(base, input[cursor:cursor+in.n]); err != nil {
				return outcomeFault, err
			}
			cursor += in.n

		case opRest:
			if err := in.w.store(base, input[cursor:]); err != nil {
				return outcomeFault, err
			}
			cursor = length

		case opMove:
			// compared against the remaining room so huge deltas cannot wrap
			if in.n >= length-cursor || in.n < -cursor {
				ok = false
				break
			}
			cursor += in.n

		case opSeekBack:
			start := cursor
			if length-cursor < len(in.needle) {
				start = length - len(in.needle)
			}
			if start < 0 {
				ok = false
				break
			}
			idx := strings.LastIndex(input[:start+len(in.needle)], in.needle)
			if idx < 0 {
				ok = false
				break
			}
			cursor = idx + len(in.needle)
		}

		if !ok {
			if p.handler != nil {
				p.handler(input, target)
			}
			return outcomeFallback, nil
		}
	}

	return outcomeContinue, nil
}
