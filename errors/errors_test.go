package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "no recipe")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "no recipe" {
		t.Errorf("expected message 'no recipe', got %q", err.Message)
	}
	if !err.Recoverable {
		t.Error("NOT_FOUND should be recoverable")
	}
}

func TestError_New_BindingErrorsNotRecoverable(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrCodeArgumentConflict,
		ErrCodeUnknownArgument,
		ErrCodeMissingArguments,
		ErrCodeTypeMismatch,
		ErrCodeCyclicDependency,
	} {
		if New(code, "boom").Recoverable {
			t.Errorf("%s should not be recoverable", code)
		}
	}
}

func TestError_NotFound(t *testing.T) {
	err := NotFound("main.Database")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "main.Database") {
		t.Errorf("expected symbol in message, got %q", err.Message)
	}
	if err.Details["symbol"] != "main.Database" {
		t.Errorf("expected symbol detail, got %v", err.Details["symbol"])
	}
}

func TestError_ArgumentConflict(t *testing.T) {
	err := ArgumentConflict("x")
	if err.Code != ErrCodeArgumentConflict {
		t.Errorf("expected ARGUMENT_CONFLICT, got %s", err.Code)
	}
	if !strings.Contains(err.Message, `"x" already provided as a positional argument`) {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestError_UnknownArgument(t *testing.T) {
	err := UnknownArgument("z", "TestClass")
	if !strings.Contains(err.Message, `"z" not found in type TestClass`) {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestError_MissingArguments_ListsEveryField(t *testing.T) {
	err := MissingArguments([]string{"b", "d"})
	if err.Message != "missing arguments: b, d" {
		t.Errorf("unexpected message %q", err.Message)
	}
	fields, ok := err.Details["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 fields in details, got %v", err.Details["fields"])
	}
}

func TestError_TypeMismatch(t *testing.T) {
	err := TypeMismatch("name", "string", "int")
	if !strings.Contains(err.Message, "expected string, got int") {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["field"] != "name" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}
}

func TestError_CyclicDependency_PathInMessage(t *testing.T) {
	err := CyclicDependency([]string{"A", "B", "A"})
	if !strings.Contains(err.Message, "A -> B -> A") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	cause := fmt.Errorf("db down")
	err := Construction("main.Repo", cause)
	if !strings.Contains(err.Error(), "cause: db down") {
		t.Errorf("expected cause in string, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestError_WithDetail_Chains(t *testing.T) {
	err := New(ErrCodeInvalidTarget, "bad").
		WithDetail("kind", "chan").
		WithDetails(map[string]any{"symbol": "main.Thing"})
	if err.Details["kind"] != "chan" {
		t.Errorf("expected kind detail, got %v", err.Details["kind"])
	}
	if err.Details["symbol"] != "main.Thing" {
		t.Errorf("expected symbol detail, got %v", err.Details["symbol"])
	}
}

func TestCodeOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("resolving: %w", NotFound("main.Database"))
	if CodeOf(wrapped) != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND through wrapping, got %s", CodeOf(wrapped))
	}
	if !IsNotFound(wrapped) {
		t.Error("expected IsNotFound to see through wrapping")
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
	if IsNotFound(nil) {
		t.Error("expected IsNotFound(nil) to be false")
	}
}
