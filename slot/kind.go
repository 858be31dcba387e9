package slot

// Kind is the decoder a slot uses, fixed when the slot is resolved.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindDecimal
	KindEnum
	KindTime
	KindDuration
	KindUUID
)

var kindNames = [...]string{
	KindString:   "string",
	KindBool:     "bool",
	KindI8:       "i8",
	KindI16:      "i16",
	KindI32:      "i32",
	KindI64:      "i64",
	KindU8:       "u8",
	KindU16:      "u16",
	KindU32:      "u32",
	KindU64:      "u64",
	KindF32:      "f32",
	KindF64:      "f64",
	KindDecimal:  "decimal",
	KindEnum:     "enum",
	KindTime:     "time",
	KindDuration: "duration",
	KindUUID:     "uuid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) IsInteger() bool {
	return k >= KindI8 && k <= KindU64
}

func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI64
}

// Bits returns the width of integer and float kinds, 0 otherwise.
func (k Kind) Bits() int {
	switch k {
	case KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindI32, KindU32, KindF32:
		return 32
	case KindI64, KindU64, KindF64:
		return 64
	default:
		return 0
	}
}

// AcceptsFormat reports whether slots of this kind may carry a format.
func (k Kind) AcceptsFormat() bool {
	switch k {
	case KindTime, KindDuration, KindUUID:
		return true
	default:
		return false
	}
}
