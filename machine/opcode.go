package machine

type opcode uint8

const (
	opSeek opcode = iota
	opCapture
	opTake
	opRest
	opMove
	opSeekBack
)

var opNames = [...]string{
	opSeek:     "seek",
	opCapture:  "capture",
	opTake:     "take",
	opRest:     "rest",
	opMove:     "move",
	opSeekBack: "seekback",
}

func (o opcode) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op?"
}

type outcome uint8

const (
	outcomeContinue outcome = iota
	outcomeFallback
	outcomeFault
)
