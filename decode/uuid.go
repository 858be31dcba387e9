package decode

import (
	stderrors "errors"
	"strings"

	"github.com/google/uuid"

	"github.com/wippyai/lineparse/errors"
)

// UUID text styles accepted as slot formats.
const (
	UUIDCanonical = "canonical" // xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
	UUIDHex       = "hex"       // 32 hex digits
	UUIDBraced    = "braced"    // {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
	UUIDURN       = "urn"       // urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
)

const urnPrefix = "urn:uuid:"

var errUUIDStyle = stderrors.New("unknown uuid style")

// ValidUUIDStyle reports whether style names a supported UUID text style.
func ValidUUIDStyle(style string) bool {
	switch style {
	case UUIDCanonical, UUIDHex, UUIDBraced, UUIDURN:
		return true
	}
	return false
}

// UUID decodes span as a UUID. A non-empty style requires span to be in
// exactly that style; otherwise every style is accepted.
func UUID(span, style string) (uuid.UUID, error) {
	if style == "" {
		u, err := uuid.Parse(span)
		if err != nil {
			return uuid.Nil, errors.MalformedValue(span, "uuid", err)
		}
		return u, nil
	}

	body, ok := "", false
	switch style {
	case UUIDCanonical:
		body, ok = span, len(span) == 36
	case UUIDHex:
		body, ok = span, len(span) == 32
	case UUIDBraced:
		if len(span) == 38 && span[0] == '{' && span[37] == '}' {
			body, ok = span[1:37], true
		}
	case UUIDURN:
		if len(span) == 45 && strings.EqualFold(span[:len(urnPrefix)], urnPrefix) {
			body, ok = span[len(urnPrefix):], true
		}
	default:
		return uuid.Nil, errors.MalformedValue(span, "uuid", errUUIDStyle)
	}
	if !ok {
		return uuid.Nil, errors.MalformedValue(span, style+" uuid", nil)
	}

	u, err := uuid.Parse(body)
	if err != nil {
		return uuid.Nil, errors.MalformedValue(span, style+" uuid", err)
	}
	return u, nil
}

// FormatUUID renders u in the given style.
func FormatUUID(u uuid.UUID, style string) (string, error) {
	switch style {
	case UUIDCanonical, "":
		return u.String(), nil
	case UUIDHex:
		return strings.ReplaceAll(u.String(), "-", ""), nil
	case UUIDBraced:
		return "{" + u.String() + "}", nil
	case UUIDURN:
		return u.URN(), nil
	}
	return "", errUUIDStyle
}
