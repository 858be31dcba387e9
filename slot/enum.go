package slot

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/wippyai/lineparse/errors"
)

// EnumTable holds the member names of a registered enum type.
type EnumTable struct {
	Type    reflect.Type
	members map[string]int64 // lower-cased name -> value
	entries []enumEntry
	Kind    Kind // underlying integer kind
}

type enumEntry struct {
	name  string
	value int64
}

var (
	enums sync.Map // reflect.Type -> *EnumTable

	// enumGeneration changes on every registration so cached slots resolved
	// before it are not reused.
	enumGeneration atomic.Uint64
)

// RegisterEnum records the member names of a named integer type so slots of
// that type decode names as well as numbers. Names match case-insensitively.
// Register enums before building plans that use them.
func RegisterEnum(t reflect.Type, members map[string]int64) error {
	if t == nil {
		return errors.NilPointer(errors.PhasePlan, nil, "reflect.Type")
	}
	kind, ok := integerKind(t)
	if !ok || t.PkgPath() == "" {
		return errors.TypeMismatch(errors.PhasePlan, nil, t.String(), "named integer type")
	}
	if len(members) == 0 {
		return invalidEnum(t, "enum has no members")
	}

	table := &EnumTable{
		Type:    t,
		Kind:    kind,
		members: make(map[string]int64, len(members)),
		entries: make([]enumEntry, 0, len(members)),
	}
	for name, v := range members {
		if name == "" {
			return invalidEnum(t, "enum member name cannot be empty")
		}
		if !fitsKind(v, kind) {
			return errors.Overflow(errors.PhasePlan, []string{t.Name(), name}, v, kind.String())
		}
		lower := strings.ToLower(name)
		if _, dup := table.members[lower]; dup {
			return invalidEnum(t, fmt.Sprintf("enum member %q is defined twice", name))
		}
		table.members[lower] = v
		table.entries = append(table.entries, enumEntry{name: name, value: v})
	}
	sort.Slice(table.entries, func(i, j int) bool { return table.entries[i].name < table.entries[j].name })

	enums.Store(t, table)
	enumGeneration.Add(1)
	return nil
}

func invalidEnum(t reflect.Type, detail string) error {
	e := errors.InvalidData(errors.PhasePlan, []string{t.Name()}, detail)
	e.GoType = t.String()
	return e
}

// LookupEnum returns the table registered for t.
func LookupEnum(t reflect.Type) (*EnumTable, bool) {
	v, ok := enums.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*EnumTable), true
}

// Lookup resolves a member name case-insensitively.
func (e *EnumTable) Lookup(name string) (int64, bool) {
	if v, ok := e.members[name]; ok {
		return v, true
	}
	for _, en := range e.entries {
		if strings.EqualFold(en.name, name) {
			return en.value, true
		}
	}
	return 0, false
}

func (e *EnumTable) TypeName() string {
	return e.Type.String()
}

// Names returns the member names in sorted order.
func (e *EnumTable) Names() []string {
	names := make([]string, len(e.entries))
	for i, en := range e.entries {
		names[i] = en.name
	}
	return names
}

func fitsKind(v int64, k Kind) bool {
	switch k {
	case KindI8:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case KindI16:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case KindI32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case KindU8:
		return v >= 0 && v <= math.MaxUint8
	case KindU16:
		return v >= 0 && v <= math.MaxUint16
	case KindU32:
		return v >= 0 && v <= math.MaxUint32
	case KindU64:
		return v >= 0
	default:
		return true
	}
}
