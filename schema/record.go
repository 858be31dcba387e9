package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

var kindTypes = [...]reflect.Type{
	slot.KindString:   reflect.TypeOf(""),
	slot.KindBool:     reflect.TypeOf(false),
	slot.KindI8:       reflect.TypeOf(int8(0)),
	slot.KindI16:      reflect.TypeOf(int16(0)),
	slot.KindI32:      reflect.TypeOf(int32(0)),
	slot.KindI64:      reflect.TypeOf(int64(0)),
	slot.KindU8:       reflect.TypeOf(uint8(0)),
	slot.KindU16:      reflect.TypeOf(uint16(0)),
	slot.KindU32:      reflect.TypeOf(uint32(0)),
	slot.KindU64:      reflect.TypeOf(uint64(0)),
	slot.KindF32:      reflect.TypeOf(float32(0)),
	slot.KindF64:      reflect.TypeOf(float64(0)),
	slot.KindDecimal:  reflect.TypeOf(decimal.Decimal{}),
	slot.KindEnum:     nil,
	slot.KindTime:     reflect.TypeOf(time.Time{}),
	slot.KindDuration: reflect.TypeOf(time.Duration(0)),
	slot.KindUUID:     reflect.TypeOf(uuid.UUID{}),
}

// RecordType builds a struct type from the declared fields. Each field gets
// an exported Go name and carries its declared name in parse and json tags.
func (s *Schema) RecordType() (reflect.Type, error) {
	if len(s.Fields) == 0 {
		return nil, errors.Load("schema declares no fields", nil)
	}

	fields := make([]reflect.StructField, 0, len(s.Fields))
	goNames := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		kind, optional, err := parseType(f.Type)
		if err != nil {
			return nil, errors.Load(fmt.Sprintf("field %q", f.Name), err)
		}

		goName := GoName(f.Name)
		if prev, dup := goNames[goName]; dup {
			return nil, errors.Load(fmt.Sprintf("fields %q and %q both map to %s", prev, f.Name, goName), nil)
		}
		goNames[goName] = f.Name

		t := kindTypes[kind]
		if optional {
			t = reflect.PointerTo(t)
		}
		fields = append(fields, reflect.StructField{
			Name: goName,
			Type: t,
			Tag:  reflect.StructTag(fmt.Sprintf(`parse:%q json:%q`, f.Name, f.Name)),
		})
	}
	return reflect.StructOf(fields), nil
}

// GoName turns a field name such as "client_ip" into an exported Go
// identifier such as "ClientIp".
func GoName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out == "" {
		return "F"
	}
	if first := []rune(out)[0]; !unicode.IsUpper(first) {
		out = "F" + out
	}
	return out
}
