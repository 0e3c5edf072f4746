package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/pai-learn/internal/platform/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "text", nil)).Info("hello", "topic", "Gravity")
	if !strings.Contains(buf.String(), "topic=Gravity") {
		t.Errorf("text handler output = %q", buf.String())
	}

	buf.Reset()
	slog.New(newHandler(&buf, "json", nil)).Info("hello", "topic", "Gravity")
	if !strings.Contains(buf.String(), `"topic":"Gravity"`) {
		t.Errorf("json handler output = %q", buf.String())
	}
}

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, closer, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("server starting", "addr", ":8080")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "server starting") {
		t.Errorf("log file = %q, want server starting record", data)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("New() should reject unknown level")
	}
}
