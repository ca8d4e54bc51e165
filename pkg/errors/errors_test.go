package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "motorcycle not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "motorcycle not found" {
		t.Errorf("expected message 'motorcycle not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidRequest, "failed to decode upgrade", cause)

	if err.Code != ErrCodeInvalidRequest {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRequest, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("connection refused")
	ctx := map[string]any{
		"motorcycle": "r1",
		"server":     "http://127.0.0.1:8080",
	}

	err := WrapWithContext(ErrCodeUnavailable, "garage request failed", cause, ctx)

	if err.Code != ErrCodeUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeUnavailable, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["motorcycle"] != "r1" {
		t.Errorf("expected motorcycle to be r1")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeCapacityExceeded, "Maximum upgrades reached"),
			expected: "[CAPACITY_EXCEEDED] Maximum upgrades reached",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeUpgradeNotFound, "Upgrade not found")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"same instance", sentinel, true},
		{"same code different message", NewWithContext(ErrCodeUpgradeNotFound, "other", map[string]any{"name": "x"}), true},
		{"wrapped by fmt", fmt.Errorf("remove: %w", sentinel), true},
		{"different code", New(ErrCodeCapacityExceeded, "Upgrade not found"), false},
		{"plain error", errors.New("Upgrade not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, sentinel); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeInvalidRequest,
		ErrCodeNotFound,
		ErrCodeMethodNotAllowed,
		ErrCodeRateLimitExceeded,
		ErrCodeCapacityExceeded,
		ErrCodeUpgradeNotFound,
		ErrCodeTimeout,
		ErrCodeUnavailable,
		ErrCodeInternal,
	}

	seen := make(map[ErrorCode]bool, len(codes))
	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
		if seen[code] {
			t.Errorf("duplicate error code: %v", code)
		}
		seen[code] = true
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ""},
		{"structured", New(ErrCodeCapacityExceeded, "full"), ErrCodeCapacityExceeded},
		{"wrapped by fmt", fmt.Errorf("add: %w", New(ErrCodeUpgradeNotFound, "missing")), ErrCodeUpgradeNotFound},
		{"outermost wins", Wrap(ErrCodeInternal, "store", New(ErrCodeNotFound, "gone")), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
