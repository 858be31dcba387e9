package machine

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/lineparse/plan"
)

type instr struct {
	w      *writer
	needle string
	n      int
	op     opcode
}

// Program is a sealed plan. It is immutable once built.
type Program struct {
	target   reflect.Type
	handler  plan.Handler
	listing  string
	code     []instr
	captures int
}

// Seal lowers p into a Program. Plans built through the plan package are
// already validated, so sealing cannot fail.
func Seal(p plan.Plan) *Program {
	ds := p.Directives()
	prog := &Program{
		target:  p.Target(),
		handler: p.Handler(),
		listing: p.String(),
		code:    make([]instr, 0, len(ds)),
	}

	for _, d := range ds {
		switch d := d.(type) {
		case plan.SeekUntil:
			prog.code = append(prog.code, instr{op: opSeek, needle: d.Needle})
		case plan.Capture:
			prog.code = append(prog.code, instr{op: opCapture, needle: d.Needle, w: newWriter(d.Slot)})
			prog.captures++
		case plan.CaptureFixed:
			prog.code = append(prog.code, instr{op: opTake, n: d.N, w: newWriter(d.Slot)})
			prog.captures++
		case plan.CaptureRemainder:
			prog.code = append(prog.code, instr{op: opRest, w: newWriter(d.Slot)})
			prog.captures++
		case plan.Move:
			prog.code = append(prog.code, instr{op: opMove, n: d.Delta})
		case plan.SeekBackUntil:
			prog.code = append(prog.code, instr{op: opSeekBack, needle: d.Needle})
		case plan.Fallback:
			// carried as prog.handler
		}
	}

	Logger().Debug("sealed program",
		zap.Stringer("target", prog.target),
		zap.Int("instructions", len(prog.code)),
		zap.Int("captures", prog.captures),
		zap.Bool("fallback", prog.handler != nil))

	return prog
}

// Target returns the struct type the program writes into.
func (p *Program) Target() reflect.Type {
	return p.target
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.code)
}

func (p *Program) HasFallback() bool {
	return p.handler != nil
}

// Plan returns the listing of the plan the program was sealed from.
func (p *Program) Plan() string {
	return p.listing
}

// Disassemble renders one instruction per line.
func (p *Program) Disassemble() string {
	var b strings.Builder
	name := "record"
	if p.target.Name() != "" {
		name = p.target.String()
	}
	fmt.Fprintf(&b, "program %s (%d instructions)\n", name, len(p.code))
	for i, in := range p.code {
		fmt.Fprintf(&b, "%04d  %-9s", i, in.op)
		switch in.op {
		case opSeek, opSeekBack:
			b.WriteString(strconv.Quote(in.needle))
		case opCapture:
			b.WriteString(strconv.Quote(in.needle))
			b.WriteString(" -> ")
			b.WriteString(in.w.slot.String())
		case opTake:
			b.WriteString(strconv.Itoa(in.n))
			b.WriteString(" -> ")
			b.WriteString(in.w.slot.String())
		case opRest:
			b.WriteString("-> ")
			b.WriteString(in.w.slot.String())
		case opMove:
			fmt.Fprintf(&b, "%+d", in.n)
		}
		b.WriteByte('\n')
	}
	if p.handler != nil {
		b.WriteString("      on failure: fallback\n")
	} else {
		b.WriteString("      on failure: stop\n")
	}
	return b.String()
}
