package errors

import (
	"strings"
	"testing"
)

func TestValidateDataFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"csv", "events.csv", ""},
		{"json", "config.json", ""},
		{"dashes and underscores", "q3_product-launch.csv", ""},
		{"long but within limit", strings.Repeat("a", 250) + ".csv", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"over length limit", strings.Repeat("a", 260) + ".csv", ErrCodeInvalidPath},
		{"forward slash", "data/events.csv", ErrCodeInvalidPath},
		{"backslash", `data\events.csv`, ErrCodeInvalidPath},
		{"parent traversal", "..events.csv", ErrCodeInvalidPath},
		{"hidden file", ".events.csv", ErrCodeInvalidPath},
		{"null byte", "foo\x00bar.csv", ErrCodeInvalidPath},
		{"newline", "foo\nbar.csv", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataFilename(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateDataFilename(%q) = %v, want code %q", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"bare filename", "timeline.png", ""},
		{"nested", "out/renders/timeline.png", ""},
		{"absolute", "/tmp/timeline.png", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"over length limit", strings.Repeat("x", 501), ErrCodeInvalidPath},
		{"null byte", "foo\x00bar.png", ErrCodeInvalidPath},
		{"control char", "foo\x01bar.png", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateOutputPath(%q) = %v, want code %q", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"https", "https://example.com/events.csv", ""},
		{"http with port", "http://localhost:8080/events.csv", ""},

		{"empty", "", ErrCodeInvalidInput},
		{"ftp scheme", "ftp://example.com", ErrCodeInvalidInput},
		{"file scheme", "file:///etc/passwd", ErrCodeInvalidInput},
		{"javascript scheme", "javascript:alert(1)", ErrCodeInvalidInput},
		{"no scheme", "example.com", ErrCodeInvalidInput},
		{"scheme without host", "http://", ErrCodeInvalidInput},
		{"unparseable", "http://exa mple.com/", ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateURL(%q) = %v, want code %q", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestCodeValuesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeMissingRequiredColumn,
		ErrCodeInvalidDateFormat,
		ErrCodeInvalidDateValue,
		ErrCodeInvalidPlacement,
		ErrCodeInvalidStyleValue,
		ErrCodeEmptyEventSet,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeTimelineNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]string, len(codes))
	for _, code := range codes {
		if prev, ok := seen[code]; ok {
			t.Errorf("code value %q reused (already used by %s)", code, prev)
		}
		seen[code] = string(code)
	}
}
