package plan

import (
	"strconv"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

// Handler is invoked with the original input and the target pointer when a
// directive cannot complete.
type Handler func(input string, target any)

// Directive is one atomic parsing operation. The set of directives is closed.
type Directive interface {
	String() string
	validate() error
}

// SeekUntil advances the cursor past the next occurrence of Needle.
type SeekUntil struct {
	Needle string
}

// Capture decodes the text between the cursor and the next Needle into Slot,
// then advances past the needle.
type Capture struct {
	Slot   *slot.Slot
	Needle string
}

// CaptureFixed decodes the next N bytes into Slot.
type CaptureFixed struct {
	Slot *slot.Slot
	N    int
}

// CaptureRemainder decodes everything from the cursor to the end of input into Slot.
type CaptureRemainder struct {
	Slot *slot.Slot
}

// Move shifts the cursor by Delta, which may be negative.
type Move struct {
	Delta int
}

// SeekBackUntil scans backwards from the cursor for Needle and leaves the
// cursor just past the match.
type SeekBackUntil struct {
	Needle string
}

// Fallback registers the plan's failure handler.
type Fallback struct {
	Handler Handler
}

// NewSeekUntil returns a validated SeekUntil.
func NewSeekUntil(needle string) (SeekUntil, error) {
	d := SeekUntil{Needle: needle}
	return d, d.validate()
}

// NewCapture returns a validated Capture writing into s.
func NewCapture(needle string, s *slot.Slot) (Capture, error) {
	d := Capture{Needle: needle, Slot: s}
	return d, d.validate()
}

// NewCaptureFixed returns a validated CaptureFixed of n bytes.
func NewCaptureFixed(n int, s *slot.Slot) (CaptureFixed, error) {
	d := CaptureFixed{N: n, Slot: s}
	return d, d.validate()
}

// NewCaptureRemainder returns a validated CaptureRemainder.
func NewCaptureRemainder(s *slot.Slot) (CaptureRemainder, error) {
	d := CaptureRemainder{Slot: s}
	return d, d.validate()
}

// NewMove returns a cursor move by delta. Delta must not be zero.
func NewMove(delta int) (Move, error) {
	d := Move{Delta: delta}
	return d, d.validate()
}

// NewSkip moves forward n bytes; n must be positive.
func NewSkip(n int) (Move, error) {
	if n <= 0 {
		return Move{}, errors.InvalidCount(errors.PhasePlan, "Skip", n)
	}
	return Move{Delta: n}, nil
}

// NewBack moves backward n bytes; n must be positive.
func NewBack(n int) (Move, error) {
	if n <= 0 {
		return Move{}, errors.InvalidCount(errors.PhasePlan, "Back", n)
	}
	return Move{Delta: -n}, nil
}

// NewSeekBackUntil returns a validated SeekBackUntil.
func NewSeekBackUntil(needle string) (SeekBackUntil, error) {
	d := SeekBackUntil{Needle: needle}
	return d, d.validate()
}

// NewFallback returns an else directive calling h.
func NewFallback(h Handler) (Fallback, error) {
	d := Fallback{Handler: h}
	return d, d.validate()
}

func (d SeekUntil) validate() error {
	if d.Needle == "" {
		return errors.InvalidNeedle(errors.PhasePlan, "needle")
	}
	return nil
}

func (d Capture) validate() error {
	if d.Slot == nil {
		return errors.InvalidSlot(nil, "", "capture needs a slot")
	}
	if d.Needle == "" {
		return errors.InvalidNeedle(errors.PhasePlan, "until")
	}
	return nil
}

func (d CaptureFixed) validate() error {
	if d.N <= 0 {
		return errors.InvalidCount(errors.PhasePlan, "Take", d.N)
	}
	if d.Slot == nil {
		return errors.InvalidSlot(nil, "", "capture needs a slot")
	}
	return nil
}

func (d CaptureRemainder) validate() error {
	if d.Slot == nil {
		return errors.InvalidSlot(nil, "", "capture needs a slot")
	}
	return nil
}

func (d Move) validate() error {
	if d.Delta == 0 {
		return errors.InvalidCount(errors.PhasePlan, "Move", d.Delta)
	}
	return nil
}

func (d SeekBackUntil) validate() error {
	if d.Needle == "" {
		return errors.InvalidNeedle(errors.PhasePlan, "until")
	}
	return nil
}

func (d Fallback) validate() error {
	if d.Handler == nil {
		return errors.NilPointer(errors.PhasePlan, nil, "plan.Handler")
	}
	return nil
}

func (d SeekUntil) String() string {
	return "until " + strconv.Quote(d.Needle)
}

func (d Capture) String() string {
	return "take until " + strconv.Quote(d.Needle) + " -> " + d.Slot.String()
}

func (d CaptureFixed) String() string {
	return "take " + strconv.Itoa(d.N) + " -> " + d.Slot.String()
}

func (d CaptureRemainder) String() string {
	return "take rest -> " + d.Slot.String()
}

func (d Move) String() string {
	return "move " + strconv.Itoa(d.Delta)
}

func (d SeekBackUntil) String() string {
	return "back until " + strconv.Quote(d.Needle)
}

func (d Fallback) String() string {
	return "else"
}
