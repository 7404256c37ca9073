package utils

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWriterLoggerPrintsBareMessages(t *testing.T) {
	var buffer bytes.Buffer
	level := NewLogLevel()
	logger := NewWriterLogger(&buffer, level)

	logger.Debug("hidden")
	logger.Error("Error: no prompt provided")
	if buffer.String() != "Error: no prompt provided\n" {
		t.Fatalf("unexpected log output %q", buffer.String())
	}

	buffer.Reset()
	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("dispatch state changed", zap.String("state", "preparing"))
	if buffer.String() != "dispatch state changed\t{\"state\": \"preparing\"}\n" {
		t.Fatalf("unexpected debug output %q", buffer.String())
	}
}

func TestGetApplicationVersionPrefersLinkerValue(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = " v1.2.3 "
	if version := GetApplicationVersion(); version != "v1.2.3" {
		t.Fatalf("GetApplicationVersion = %q", version)
	}
	Version = ""
	if version := GetApplicationVersion(); version == "" {
		t.Fatalf("expected a fallback version")
	}
}
