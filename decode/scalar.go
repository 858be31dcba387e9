package decode

import (
	stderrors "errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/wippyai/lineparse/errors"
)

// Bool decodes the restricted boolean grammar: "1" or a case-insensitive
// "true" are true, everything else (including an empty span) is false.
func Bool(span string) bool {
	switch len(span) {
	case 1:
		return span[0] == '1'
	case 4:
		return (span[0]|0x20) == 't' &&
			(span[1]|0x20) == 'r' &&
			(span[2]|0x20) == 'u' &&
			(span[3]|0x20) == 'e'
	default:
		return false
	}
}

// Float decodes span as a 32 or 64 bit floating point number.
func Float(span string, bits int) (float64, error) {
	v, err := strconv.ParseFloat(span, bits)
	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) {
			return 0, errors.Overflow(errors.PhaseDecode, nil, span, "f"+strconv.Itoa(bits))
		}
		return 0, errors.MalformedValue(span, "f"+strconv.Itoa(bits), err)
	}
	return v, nil
}

// Decimal decodes span as an arbitrary precision decimal.
func Decimal(span string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(span)
	if err != nil {
		return decimal.Decimal{}, errors.MalformedValue(span, "decimal", err)
	}
	return d, nil
}
