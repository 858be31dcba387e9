package slot

import (
	stderrors "errors"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Slot is a resolved, writable field of a target struct.
type Slot struct {
	Owner    reflect.Type // struct the field is declared on
	GoType   reflect.Type // declared field type
	Elem     reflect.Type // value type; GoType's element when Optional
	Enum     *EnumTable   // set for KindEnum
	Name     string       // name the slot was requested by
	Field    string       // Go field name
	Format   string
	Offset   uintptr
	Kind     Kind
	Optional bool
}

// Path returns the owner and field name, used to locate errors.
func (s *Slot) Path() []string {
	return []string{ownerName(s.Owner), s.Field}
}

// ownerName names unnamed struct types, such as runtime-built records, "record".
func ownerName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		return n
	}
	return "record"
}

func (s *Slot) String() string {
	t := s.Kind.String()
	if s.Optional {
		t += "?"
	}
	if s.Format != "" {
		return ownerName(s.Owner) + "." + s.Field + " " + t + " " + `"` + s.Format + `"`
	}
	return ownerName(s.Owner) + "." + s.Field + " " + t
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
)

// KindOf maps a Go value type to its decode kind.
func KindOf(t reflect.Type) (Kind, *EnumTable, bool) {
	switch t {
	case timeType:
		return KindTime, nil, true
	case durationType:
		return KindDuration, nil, true
	case uuidType:
		return KindUUID, nil, true
	case decimalType:
		return KindDecimal, nil, true
	}

	if table, ok := LookupEnum(t); ok {
		return KindEnum, table, true
	}
	if k, ok := integerKind(t); ok {
		return k, nil, true
	}

	switch t.Kind() {
	case reflect.String:
		return KindString, nil, true
	case reflect.Bool:
		return KindBool, nil, true
	case reflect.Float32:
		return KindF32, nil, true
	case reflect.Float64:
		return KindF64, nil, true
	default:
		return 0, nil, false
	}
}

func integerKind(t reflect.Type) (Kind, bool) {
	switch t.Kind() {
	case reflect.Int8:
		return KindI8, true
	case reflect.Int16:
		return KindI16, true
	case reflect.Int32:
		return KindI32, true
	case reflect.Int64:
		return KindI64, true
	case reflect.Int:
		if t.Size() == 4 {
			return KindI32, true
		}
		return KindI64, true
	case reflect.Uint8:
		return KindU8, true
	case reflect.Uint16:
		return KindU16, true
	case reflect.Uint32:
		return KindU32, true
	case reflect.Uint64:
		return KindU64, true
	case reflect.Uint:
		if t.Size() == 4 {
			return KindU32, true
		}
		return KindU64, true
	default:
		return 0, false
	}
}

var errNoLayoutElements = stderrors.New("layout contains no reference time elements")
