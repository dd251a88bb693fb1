package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsCodeAndMessage(t *testing.T) {
	err := New(ErrCodeInvalidDateFormat, "row %d: bad date %q", 3, "2024-03-15")

	if err.Code != ErrCodeInvalidDateFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDateFormat)
	}
	if want := `row 3: bad date "2024-03-15"`; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if want := `INVALID_DATE_FORMAT: row 3: bad date "2024-03-15"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapKeepsCauseReachable(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch %s", "http://example.com")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the cause")
	}
	if want := "NETWORK_ERROR: fetch http://example.com: connection refused"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	rateLimited := &RateLimitedError{RetryAfter: 5}

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeEmptyEventSet, "no events"), ErrCodeEmptyEventSet, true},
		{"different code", New(ErrCodeInvalidDateValue, "bad"), ErrCodeNetwork, false},
		{"outer code wins on wrapped chain", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork, true},
		{"plain error has no code", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
		{"self-coded error", rateLimited, ErrCodeRateLimited, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded error", New(ErrCodeMissingRequiredColumn, "no date column"), ErrCodeMissingRequiredColumn},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
		{"self-coded error", &RateLimitedError{RetryAfter: 10}, ErrCodeRateLimited},
		{"self-coded error behind fmt.Errorf", fmt.Errorf("outer: %w", &RateLimitedError{}), ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	coded := New(ErrCodeInvalidInput, "friendly message")
	if got := UserMessage(coded); got != "friendly message" {
		t.Errorf("UserMessage(coded) = %q, want message without code prefix", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q, want full error string", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	withHint := &RateLimitedError{RetryAfter: 60}
	if want := "rate limited: retry after 60 seconds"; withHint.Error() != want {
		t.Errorf("Error() = %q, want %q", withHint.Error(), want)
	}

	bare := &RateLimitedError{}
	if want := "rate limited"; bare.Error() != want {
		t.Errorf("Error() = %q, want %q", bare.Error(), want)
	}
	if bare.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %v, want %v", bare.Code(), ErrCodeRateLimited)
	}
}
