package machine

import (
	"reflect"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wippyai/lineparse/decode"
	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

// decodeFunc decodes span and stores the result at dst. dst is only written
// when decoding succeeds.
type decodeFunc func(dst unsafe.Pointer, span string) error

// writer stores a captured span into a slot of the target struct.
type writer struct {
	slot   *slot.Slot
	decode decodeFunc
}

func newWriter(s *slot.Slot) *writer {
	return &writer{slot: s, decode: decoderFor(s)}
}

// store writes span into the slot of the struct at base. Empty spans are not
// decoded: optional slots become nil, others the zero value.
func (w *writer) store(base unsafe.Pointer, span string) error {
	s := w.slot
	field := unsafe.Add(base, s.Offset)

	if s.Optional {
		if len(span) == 0 {
			*(*unsafe.Pointer)(field) = nil
			return nil
		}
		v := reflect.New(s.Elem).UnsafePointer()
		if err := w.decode(v, span); err != nil {
			return errors.WithPath(err, s.Path()...)
		}
		*(*unsafe.Pointer)(field) = v
		return nil
	}

	if len(span) == 0 {
		reflect.NewAt(s.Elem, field).Elem().SetZero()
		return nil
	}
	if err := w.decode(field, span); err != nil {
		return errors.WithPath(err, s.Path()...)
	}
	return nil
}

func decoderFor(s *slot.Slot) decodeFunc {
	switch s.Kind {
	case slot.KindString:
		return func(dst unsafe.Pointer, span string) error {
			*(*string)(dst) = span
			return nil
		}
	case slot.KindBool:
		return func(dst unsafe.Pointer, span string) error {
			*(*bool)(dst) = decode.Bool(span)
			return nil
		}
	case slot.KindI8, slot.KindI16, slot.KindI32, slot.KindI64,
		slot.KindU8, slot.KindU16, slot.KindU32, slot.KindU64:
		return integerDecoder(s.Kind)
	case slot.KindF32:
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Float(span, 32)
			if err != nil {
				return err
			}
			*(*float32)(dst) = float32(v)
			return nil
		}
	case slot.KindF64:
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Float(span, 64)
			if err != nil {
				return err
			}
			*(*float64)(dst) = v
			return nil
		}
	case slot.KindDecimal:
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Decimal(span)
			if err != nil {
				return err
			}
			*(*decimal.Decimal)(dst) = v
			return nil
		}
	case slot.KindEnum:
		return enumDecoder(s.Enum)
	case slot.KindTime:
		layout := s.Format
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Time(span, layout)
			if err != nil {
				return err
			}
			*(*time.Time)(dst) = v
			return nil
		}
	case slot.KindDuration:
		layout := s.Format
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Duration(span, layout)
			if err != nil {
				return err
			}
			*(*time.Duration)(dst) = v
			return nil
		}
	case slot.KindUUID:
		style := s.Format
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.UUID(span, style)
			if err != nil {
				return err
			}
			*(*uuid.UUID)(dst) = v
			return nil
		}
	default:
		// Resolve only produces the kinds above.
		panic("machine: unhandled slot kind " + s.Kind.String())
	}
}

func integerDecoder(k slot.Kind) decodeFunc {
	bits := k.Bits()
	if k.IsSigned() {
		return func(dst unsafe.Pointer, span string) error {
			v, err := decode.Signed(span, bits)
			if err != nil {
				return err
			}
			storeInt(dst, k, v)
			return nil
		}
	}
	return func(dst unsafe.Pointer, span string) error {
		v, err := decode.Unsigned(span, bits)
		if err != nil {
			return err
		}
		storeInt(dst, k, int64(v))
		return nil
	}
}

func enumDecoder(table *slot.EnumTable) decodeFunc {
	k := table.Kind
	bits, signed := k.Bits(), k.IsSigned()
	return func(dst unsafe.Pointer, span string) error {
		v, err := decode.Enum(span, table, bits, signed)
		if err != nil {
			return err
		}
		storeInt(dst, k, v)
		return nil
	}
}

// storeInt writes v at dst with the width of k. Unsigned values arrive as
// their two's complement bit pattern.
func storeInt(dst unsafe.Pointer, k slot.Kind, v int64) {
	switch k {
	case slot.KindI8:
		*(*int8)(dst) = int8(v)
	case slot.KindI16:
		*(*int16)(dst) = int16(v)
	case slot.KindI32:
		*(*int32)(dst) = int32(v)
	case slot.KindI64:
		*(*int64)(dst) = v
	case slot.KindU8:
		*(*uint8)(dst) = uint8(v)
	case slot.KindU16:
		*(*uint16)(dst) = uint16(v)
	case slot.KindU32:
		*(*uint32)(dst) = uint32(v)
	case slot.KindU64:
		*(*uint64)(dst) = uint64(v)
	}
}
