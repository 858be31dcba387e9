package slot

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wippyai/lineparse/decode"
	"github.com/wippyai/lineparse/errors"
)

// Resolver resolves and caches slots. It is safe for concurrent use.
type Resolver struct {
	cache sync.Map // cacheKey -> *Slot
}

type cacheKey struct {
	owner      reflect.Type
	name       string
	format     string
	generation uint64
}

// NewResolver returns a resolver with an empty cache.
func NewResolver() *Resolver {
	return &Resolver{}
}

var defaultResolver = NewResolver()

// Resolve resolves name on owner using the shared resolver.
func Resolve(owner reflect.Type, name, format string) (*Slot, error) {
	return defaultResolver.Resolve(owner, name, format)
}

// Resolve finds the field called name on the struct type owner, checks that
// it is a writable slot of a supported type, and validates format against it.
func (r *Resolver) Resolve(owner reflect.Type, name, format string) (*Slot, error) {
	if owner == nil {
		return nil, errors.NilPointer(errors.PhasePlan, []string{name}, "reflect.Type")
	}
	if owner.Kind() != reflect.Struct {
		return nil, errors.InvalidSlot([]string{name}, owner.String(), "target must be a struct type")
	}

	key := cacheKey{owner: owner, name: name, format: format, generation: enumGeneration.Load()}
	if cached, ok := r.cache.Load(key); ok {
		return cached.(*Slot), nil
	}

	s, err := r.resolve(owner, name, format)
	if err != nil {
		return nil, err
	}

	r.cache.Store(key, s)
	return s, nil
}

func (r *Resolver) resolve(owner reflect.Type, name, format string) (*Slot, error) {
	path := []string{ownerName(owner), name}

	field, found := findField(owner, name)
	if !found {
		if promoted, ok := owner.FieldByName(name); ok && len(promoted.Index) > 1 {
			return nil, errors.InvalidSlot(path, promoted.Type.String(), "must be declared on %s, not promoted from an embedded struct", ownerName(owner))
		}
		return nil, errors.InvalidSlot(path, "", "field does not exist on %s", ownerName(owner))
	}
	path[1] = field.Name

	if !field.IsExported() {
		return nil, errors.InvalidSlot(path, field.Type.String(), "unexported field is not writable")
	}
	if field.Anonymous {
		return nil, errors.InvalidSlot(path, field.Type.String(), "embedded field cannot be a slot")
	}

	elem := field.Type
	optional := false
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
		optional = true
	}

	kind, table, ok := KindOf(elem)
	if !ok {
		return nil, errors.InvalidSlot(path, field.Type.String(), "not a supported type")
	}

	if format != "" {
		if !kind.AcceptsFormat() {
			return nil, errors.New(errors.PhasePlan, errors.KindInvalidFormat).
				Path(path...).
				GoType(field.Type.String()).
				Detail("%s slots cannot have a format; only time, duration and uuid can", kind).
				Value(format).
				Build()
		}
		if err := validateFormat(kind, format); err != nil {
			return nil, errors.InvalidFormat(path, format, err)
		}
	}

	return &Slot{
		Owner:    owner,
		GoType:   field.Type,
		Elem:     elem,
		Enum:     table,
		Name:     name,
		Field:    field.Name,
		Format:   format,
		Offset:   field.Offset,
		Kind:     kind,
		Optional: optional,
	}, nil
}

// findField matches by: 1) parse:"name" tag, 2) exact name, 3) case-insensitive.
func findField(owner reflect.Type, name string) (reflect.StructField, bool) {
	var folded reflect.StructField
	haveFolded := false

	for i := 0; i < owner.NumField(); i++ {
		field := owner.Field(i)
		tag := field.Tag.Get("parse")
		if tag == "-" {
			continue
		}
		if tag == name {
			return field, true
		}
		if tag != "" {
			continue
		}
		if field.Name == name {
			return field, true
		}
		if strings.EqualFold(field.Name, name) && (!haveFolded || (!folded.IsExported() && field.IsExported())) {
			folded, haveFolded = field, true
		}
	}
	return folded, haveFolded
}

// durationSample is formatted and parsed back to validate duration layouts.
const durationSample = time.Hour + 2*time.Minute + 3*time.Second + 456*time.Millisecond

func validateFormat(kind Kind, format string) error {
	switch kind {
	case KindTime:
		now := time.Now().UTC()
		s := now.Format(format)
		if s == format {
			return errNoLayoutElements
		}
		_, err := decode.Time(s, format)
		return err

	case KindDuration:
		s := decode.FormatDuration(durationSample, format)
		if s == format {
			return errNoLayoutElements
		}
		_, err := decode.Duration(s, format)
		return err

	case KindUUID:
		s, err := decode.FormatUUID(uuid.Nil, format)
		if err != nil {
			return err
		}
		_, err = decode.UUID(s, format)
		return err
	}
	return nil
}
