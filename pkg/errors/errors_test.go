package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCodeInvalidRecord, "node %q has no title", "basics")
	if got, want := err.Error(), `INVALID_RECORD: node "basics" has no title`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidPayload, cause, "decode yaml")
	if got, want := wrapped.Error(), "INVALID_PAYLOAD: decode yaml: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause")
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeInvalidInput, "inner")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", inner, ErrCodeInvalidInput, true},
		{"other code", inner, ErrCodeFileNotFound, false},
		{"outer code wins", Wrap(ErrCodeFileNotFound, inner, "outer"), ErrCodeFileNotFound, true},
		{"inner code hidden", Wrap(ErrCodeFileNotFound, inner, "outer"), ErrCodeInvalidInput, false},
		{"fmt wrapped", fmt.Errorf("load: %w", inner), ErrCodeInvalidInput, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("context: %w", Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open rows.yaml"))
	if got := GetCode(err); got != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %q", got)
	}
	if got := UserMessage(err); got != "open rows.yaml" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("plain")
	if GetCode(plain) != "" || UserMessage(plain) != "plain" {
		t.Errorf("plain error: code %q, message %q", GetCode(plain), UserMessage(plain))
	}
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidPayload, http.StatusBadRequest},
		{ErrCodeInvalidRecord, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeInvalidConfig, http.StatusInternalServerError},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeFileNotFound, http.StatusNotFound},
		{ErrCodeUnsupported, http.StatusUnsupportedMediaType},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%q.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}
