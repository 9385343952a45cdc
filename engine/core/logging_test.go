package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestLogErrorKeepsPercentSigns(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	err := fmt.Errorf("%w: geometry %s is not defined", ErrPreconditionViolation, "100%d")
	LogError("%s", err)

	out := buf.String()
	if !strings.Contains(out, "geometry 100%d is not defined") {
		t.Errorf("log output = %q", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Errorf("message was used as a format string: %q", out)
	}
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Error("wrapped sentinel lost")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{" WARN ", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"chatty", InfoLevel, false},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseLogLevel(%q) error %v is not ErrInvalidArgument", tt.in, err)
		}
	}
}
