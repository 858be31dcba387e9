package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhasePlan,
				Kind:   KindInvalidSlot,
				Path:   []string{"LogRow", "Bytes"},
				GoType: "chan int",
				Detail: "not a supported type",
			},
			contains: []string{"[plan]", "invalid_slot", "LogRow.Bytes", "chan int", "not a supported type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOverflow,
			},
			contains: []string{"[decode]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "bad yaml",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "bad yaml", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindMalformedValue,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhasePlan,
		Kind:  KindPlanShape,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhasePlan, Kind: KindPlanShape}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseSeal, Kind: KindPlanShape}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhasePlan, Kind: KindInvalidCount}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, New(PhasePlan, KindPlanShape).Build()) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhasePlan, KindInvalidSlot).
		Path("Row", "Name").
		GoType("func()").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "func").
		Build()

	if err.Phase != PhasePlan {
		t.Errorf("Phase = %v, want %v", err.Phase, PhasePlan)
	}
	if err.Kind != KindInvalidSlot {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidSlot)
	}
	if len(err.Path) != 2 || err.Path[0] != "Row" || err.Path[1] != "Name" {
		t.Errorf("Path = %v, want [Row Name]", err.Path)
	}
	if err.GoType != "func()" {
		t.Errorf("GoType = %v, want 'func()'", err.GoType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected string, got func" {
		t.Errorf("Detail = %v, want 'expected string, got func'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{InvalidSlot([]string{"f"}, "int", "missing"), "InvalidSlot", PhasePlan, KindInvalidSlot},
		{InvalidFormat([]string{"f"}, "%%", nil), "InvalidFormat", PhasePlan, KindInvalidFormat},
		{InvalidNeedle(PhasePlan, "until"), "InvalidNeedle", PhasePlan, KindInvalidNeedle},
		{InvalidCount(PhasePlan, "Skip", 0), "InvalidCount", PhasePlan, KindInvalidCount},
		{PlanShape("nothing may follow a fallback"), "PlanShape", PhasePlan, KindPlanShape},
		{TypeMismatch(PhaseExec, nil, "*int", "*Row"), "TypeMismatch", PhaseExec, KindTypeMismatch},
		{NilPointer(PhaseExec, nil, "*Row"), "NilPointer", PhaseExec, KindNilPointer},
		{Unsupported(PhaseLoad, "enums"), "Unsupported", PhaseLoad, KindUnsupported},
		{MalformedNumber("12a", "unexpected character"), "MalformedNumber", PhaseDecode, KindMalformedNumber},
		{Overflow(PhaseDecode, nil, "256", "u8"), "Overflow", PhaseDecode, KindOverflow},
		{UnknownEnumName("purple", "Color"), "UnknownEnumName", PhaseDecode, KindUnknownEnumName},
		{MalformedValue("x", "uuid", nil), "MalformedValue", PhaseDecode, KindMalformedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}

	if v := InvalidCount(PhasePlan, "Take", -3).Value; v != -3 {
		t.Errorf("InvalidCount Value = %v, want -3", v)
	}
	if d := Overflow(PhaseDecode, nil, "256", "u8").Detail; !strings.Contains(d, "256") || !strings.Contains(d, "u8") {
		t.Errorf("Overflow Detail = %q", d)
	}
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("9", 100)
	err := MalformedNumber(long, "too long")
	if s, _ := err.Value.(string); len(s) != maxPreview+3 {
		t.Errorf("preview length = %d, want %d", len(s), maxPreview+3)
	}
}

func TestClassification(t *testing.T) {
	construction := PlanShape("x")
	fault := Overflow(PhaseDecode, nil, 1, "u8")

	if !IsConstruction(construction) || IsConstruction(fault) {
		t.Error("IsConstruction misclassified")
	}
	if !IsDecodeFault(fault) || IsDecodeFault(construction) {
		t.Error("IsDecodeFault misclassified")
	}
	if IsDecodeFault(errors.New("plain")) {
		t.Error("plain errors are not decode faults")
	}
	if KindOf(fault) != KindOverflow {
		t.Errorf("KindOf = %v, want overflow", KindOf(fault))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf plain error should be empty")
	}
}

func TestWithPath(t *testing.T) {
	orig := Overflow(PhaseDecode, nil, 256, "u8")
	got := WithPath(orig, "Row", "Small")

	var e *Error
	if !errors.As(got, &e) {
		t.Fatal("WithPath lost the *Error")
	}
	if strings.Join(e.Path, ".") != "Row.Small" {
		t.Errorf("Path = %v", e.Path)
	}
	if len(orig.Path) != 0 {
		t.Error("WithPath mutated the original")
	}

	plain := errors.New("plain")
	if WithPath(plain, "x") != plain {
		t.Error("WithPath should pass through foreign errors")
	}
}

func TestAsAndLoad(t *testing.T) {
	cause := errors.New("yaml: line 3: bad indent")
	wrapped := fmt.Errorf("schema.yaml: %w", Load("decode schema", cause))

	e, ok := As(wrapped)
	if !ok {
		t.Fatal("As did not find the *Error")
	}
	if e.Phase != PhaseLoad || e.Kind != KindInvalidData {
		t.Errorf("got %s/%s, want load/invalid_data", e.Phase, e.Kind)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause lost")
	}
	if _, ok := As(cause); ok {
		t.Error("As matched a plain error")
	}

	w := Wrap(PhaseSeal, KindUnsupported, cause, "lowering")
	if !strings.Contains(w.Error(), "[seal] unsupported: lowering (caused by: yaml") {
		t.Errorf("Wrap().Error() = %q", w.Error())
	}
}
