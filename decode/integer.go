package decode

import (
	"math"
	"strconv"

	"github.com/wippyai/lineparse/errors"
)

// accumulate reads [-]digits into an unsigned magnitude.
func accumulate(span string) (mag uint64, neg bool, err error) {
	if len(span) == 0 {
		return 0, false, errors.MalformedNumber(span, "empty span")
	}

	i := 0
	if span[0] == '-' {
		if len(span) == 1 {
			return 0, false, errors.MalformedNumber(span, "sign without digits")
		}
		neg = true
		i = 1
	}

	// a stray character anywhere wins over overflow
	overflow := false
	for ; i < len(span); i++ {
		d := span[i] - '0'
		if d > 9 {
			return 0, false, errors.MalformedNumber(span, "unexpected character "+strconv.QuoteRune(rune(span[i]))+" at "+strconv.Itoa(i))
		}
		if overflow || mag > (math.MaxUint64-uint64(d))/10 {
			overflow = true
			continue
		}
		mag = mag*10 + uint64(d)
	}
	if overflow {
		return 0, false, errors.Overflow(errors.PhaseDecode, nil, span, "64-bit accumulator")
	}
	return mag, neg, nil
}

// Signed decodes span as a signed integer of the given width (8, 16, 32 or 64).
func Signed(span string, bits int) (int64, error) {
	mag, neg, err := accumulate(span)
	if err != nil {
		return 0, err
	}

	limit := uint64(1)<<(bits-1) - 1
	if neg {
		if mag > limit+1 {
			return 0, errors.Overflow(errors.PhaseDecode, nil, span, signedName(bits))
		}
		if mag == 0 {
			return 0, nil
		}
		return -int64(mag-1) - 1, nil
	}
	if mag > limit {
		return 0, errors.Overflow(errors.PhaseDecode, nil, span, signedName(bits))
	}
	return int64(mag), nil
}

// Unsigned decodes span as an unsigned integer of the given width.
// Negative values overflow, except for "-0".
func Unsigned(span string, bits int) (uint64, error) {
	mag, neg, err := accumulate(span)
	if err != nil {
		return 0, err
	}

	if neg && mag != 0 {
		return 0, errors.Overflow(errors.PhaseDecode, nil, span, unsignedName(bits))
	}

	limit := uint64(math.MaxUint64)
	if bits < 64 {
		limit = uint64(1)<<bits - 1
	}
	if mag > limit {
		return 0, errors.Overflow(errors.PhaseDecode, nil, span, unsignedName(bits))
	}
	return mag, nil
}

// IsIntegral reports whether span matches [-]digit{digit}.
func IsIntegral(span string) bool {
	if len(span) > 0 && span[0] == '-' {
		span = span[1:]
	}
	if len(span) == 0 {
		return false
	}
	for i := 0; i < len(span); i++ {
		if span[i] < '0' || span[i] > '9' {
			return false
		}
	}
	return true
}

func signedName(bits int) string {
	return "s" + strconv.Itoa(bits)
}

func unsignedName(bits int) string {
	return "u" + strconv.Itoa(bits)
}
