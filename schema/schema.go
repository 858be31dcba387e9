package schema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/slot"
)

// Schema is a parsed plan document.
type Schema struct {
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
	Steps  []Step  `yaml:"steps" json:"steps"`
}

// Field declares one member of a dynamic record.
type Field struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Step is one directive. Exactly one member is set.
type Step struct {
	Until     *string `yaml:"until,omitempty" json:"until,omitempty"`
	Take      *Take   `yaml:"take,omitempty" json:"take,omitempty"`
	Rest      *Rest   `yaml:"rest,omitempty" json:"rest,omitempty"`
	Move      *int    `yaml:"move,omitempty" json:"move,omitempty"`
	Skip      *int    `yaml:"skip,omitempty" json:"skip,omitempty"`
	Back      *int    `yaml:"back,omitempty" json:"back,omitempty"`
	BackUntil *string `yaml:"back_until,omitempty" json:"back_until,omitempty"`
}

// Take captures up to a needle or a fixed number of bytes.
type Take struct {
	Until  string `yaml:"until,omitempty" json:"until,omitempty"`
	Count  int    `yaml:"count,omitempty" json:"count,omitempty"`
	Into   string `yaml:"into" json:"into"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Rest captures the remainder of the line.
type Rest struct {
	Into   string `yaml:"into" json:"into"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Parse decodes and validates a schema document. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	return Load(bytes.NewReader(data))
}

// Load reads a schema document from r.
func Load(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Load("empty schema document", nil)
		}
		return nil, errors.Load("decode schema", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads the schema document at path.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open schema", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Validate checks the document shape. Directive arguments are checked again
// when the plan is built.
func (s *Schema) Validate() error {
	if len(s.Steps) == 0 {
		return errors.Load("schema has no steps", nil)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return errors.Load(fmt.Sprintf("field %d has no name", i+1), nil)
		}
		if seen[f.Name] {
			return errors.Load(fmt.Sprintf("field %q is declared twice", f.Name), nil)
		}
		seen[f.Name] = true
		if _, _, err := parseType(f.Type); err != nil {
			return errors.Load(fmt.Sprintf("field %q", f.Name), err)
		}
	}

	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.Load(fmt.Sprintf("step %d", i+1), err)
		}
		if into := st.into(); into != "" && len(s.Fields) > 0 && !seen[into] {
			return errors.Load(fmt.Sprintf("step %d writes undeclared field %q", i+1, into), nil)
		}
	}
	return nil
}

func (st Step) actions() []string {
	var set []string
	if st.Until != nil {
		set = append(set, "until")
	}
	if st.Take != nil {
		set = append(set, "take")
	}
	if st.Rest != nil {
		set = append(set, "rest")
	}
	if st.Move != nil {
		set = append(set, "move")
	}
	if st.Skip != nil {
		set = append(set, "skip")
	}
	if st.Back != nil {
		set = append(set, "back")
	}
	if st.BackUntil != nil {
		set = append(set, "back_until")
	}
	return set
}

// Action returns the name of the step's action.
func (st Step) Action() string {
	if set := st.actions(); len(set) == 1 {
		return set[0]
	}
	return ""
}

func (st Step) validate() error {
	switch set := st.actions(); len(set) {
	case 0:
		return stderrors.New("no action set")
	case 1:
	default:
		return fmt.Errorf("more than one action set: %s", strings.Join(set, ", "))
	}

	switch {
	case st.Take != nil:
		if st.Take.Into == "" {
			return stderrors.New("take needs into")
		}
		if (st.Take.Until == "") == (st.Take.Count == 0) {
			return stderrors.New("take needs exactly one of until and count")
		}
	case st.Rest != nil:
		if st.Rest.Into == "" {
			return stderrors.New("rest needs into")
		}
	}
	return nil
}

func (st Step) into() string {
	switch {
	case st.Take != nil:
		return st.Take.Into
	case st.Rest != nil:
		return st.Rest.Into
	}
	return ""
}

// parseType splits a field type such as "i32?" into its kind and optionality.
func parseType(name string) (slot.Kind, bool, error) {
	optional := strings.HasSuffix(name, "?")
	k, ok := slot.ParseKind(strings.TrimSuffix(name, "?"))
	if !ok {
		return 0, false, fmt.Errorf("unknown type %q", name)
	}
	if k == slot.KindEnum {
		return 0, false, errors.Unsupported(errors.PhaseLoad, "enum fields need a registered Go type")
	}
	return k, optional, nil
}
