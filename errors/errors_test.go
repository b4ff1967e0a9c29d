package errors

import (
	"errors"
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
				Phase:  PhaseDispatch,
				Kind:   KindTypeMismatch,
				GoType: "main.DoorCommand",
				Meta:   "doors:command",
				Detail: "cannot convert",
			},
			contains: []string{"[dispatch]", "type_mismatch", "main.DoorCommand", "doors:command", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "allocation", "memory full", "caused by", "underlying error"},
		},
		{
			name: "meta only",
			err: &Error{
				Phase:  PhaseDispatch,
				Kind:   KindHandler,
				Meta:   "builtin:button_event",
				Detail: "boom",
			},
			contains: []string{"message builtin:button_event - boom"},
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
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseDispatch,
		Kind:   KindTypeMismatch,
		GoType: "foo",
	}

	if !err.Is(&Error{Phase: PhaseDispatch, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDispatch, Kind: KindHandler}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDispatch, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDispatch, KindTypeMismatch).
		GoType("main.Door").
		Meta("doors:command").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "a", "b").
		Build()

	if err.Phase != PhaseDispatch {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDispatch)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.GoType != "main.Door" {
		t.Errorf("GoType = %v, want 'main.Door'", err.GoType)
	}
	if err.Meta != "doors:command" {
		t.Errorf("Meta = %v, want 'doors:command'", err.Meta)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected a, got b" {
		t.Errorf("Detail = %v, want 'expected a, got b'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseDispatch, "int", "test:message")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.Meta != "test:message" {
			t.Errorf("GoType=%v Meta=%v", err.GoType, err.Meta)
		}
	})

	t.Run("DecodeFailed", func(t *testing.T) {
		cause := errors.New("bad map")
		err := DecodeFailed(PhaseDecode, "string", cause)
		if err.Kind != KindInvalidData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
		}
		if !errors.Is(err, cause) {
			t.Error("DecodeFailed should wrap cause")
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseHost, 1024)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseHost, 65530, 16, 65536)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if !strings.Contains(err.Detail, "65546") {
			t.Errorf("Detail = %v, should contain region end", err.Detail)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseDeploy, "-user-id is required")
		if err.Kind != KindInvalidInput || err.Phase != PhaseDeploy {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Error() != "[deploy] invalid_input: -user-id is required" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("MissingExport", func(t *testing.T) {
		err := MissingExport("allocate")
		if err.Kind != KindMissingExport {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingExport)
		}
	})
}

func TestMissingImportsError(t *testing.T) {
	t.Run("single import", func(t *testing.T) {
		err := NewMissingImportsError([]string{"messages#take"})
		if len(err.Imports) != 1 {
			t.Errorf("expected 1 import, got %d", len(err.Imports))
		}
		if err.Imports[0].Module != "messages" {
			t.Errorf("module = %q, want messages", err.Imports[0].Module)
		}
		if err.Imports[0].Function != "take" {
			t.Errorf("function = %q, want take", err.Imports[0].Function)
		}
	})

	t.Run("multiple modules grouped", func(t *testing.T) {
		err := NewMissingImportsError([]string{
			"textures#create",
			"vehicle#is_coupled",
			"textures#dispose",
		})
		msg := err.Error()
		if !strings.Contains(msg, "missing 3") {
			t.Errorf("error should contain count, got %s", msg)
		}
		if !strings.Contains(msg, "textures:") || !strings.Contains(msg, "vehicle:") {
			t.Errorf("error should group by module, got %s", msg)
		}
		if strings.Count(msg, "textures:") != 1 {
			t.Errorf("module should appear once, got %s", msg)
		}
	})

	t.Run("empty imports", func(t *testing.T) {
		err := NewMissingImportsError([]string{})
		if !strings.Contains(err.Error(), "no imports specified") {
			t.Errorf("empty error should have specific message, got: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewMissingImportsError([]string{"mod#fn"})
		if !errors.Is(err, &MissingImportsError{}) {
			t.Error("errors.Is should match MissingImportsError")
		}
	})
}
