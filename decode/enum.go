package decode

import (
	"github.com/wippyai/lineparse/errors"
)

// Members resolves enum member names to their underlying values.
// Lookup must be case-insensitive.
type Members interface {
	Lookup(name string) (int64, bool)
	TypeName() string
}

// Enum decodes span into an enum's underlying integer value. Integral spans
// are decoded numerically and narrowed to the enum's width; anything else is
// looked up by member name.
func Enum(span string, m Members, bits int, signed bool) (int64, error) {
	if IsIntegral(span) {
		if signed {
			return Signed(span, bits)
		}
		v, err := Unsigned(span, bits)
		return int64(v), err
	}

	if v, ok := m.Lookup(span); ok {
		return v, nil
	}
	return 0, errors.UnknownEnumName(span, m.TypeName())
}
