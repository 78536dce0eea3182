package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer logger.SetLevel(logrus.InfoLevel)

	if err := SetLogLevel("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", GetLogger().GetLevel())
	}
	if err := SetLogLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Fatalf("invalid level must not change the current level")
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	GetLogger().WithField("attempt", 1).Info("rendered")
	if !strings.Contains(buf.String(), "rendered") || !strings.Contains(buf.String(), "attempt=1") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}
