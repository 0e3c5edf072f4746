package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-learn/internal/platform/config"
	"github.com/p-n-ai/pai-learn/internal/store"
)

func TestNewAIRouter(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AIConfig
		want bool
	}{
		{"none", config.AIConfig{}, false},
		{"google", config.AIConfig{Google: config.GoogleConfig{APIKey: "AIza", Model: "gemini-2.5-pro"}}, true},
		{"deepseek", config.AIConfig{DeepSeek: config.DeepSeekConfig{APIKey: "sk-ds"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAIRouter(&config.Config{AI: tt.cfg})
			if router.HasProvider() != tt.want {
				t.Errorf("HasProvider() = %v, want %v", router.HasProvider(), tt.want)
			}
		})
	}
}

func TestNewAIRouter_TaskRoutes(t *testing.T) {
	cfg := &config.Config{AI: config.AIConfig{
		Google:     config.GoogleConfig{APIKey: "AIza"},
		DeepSeek:   config.DeepSeekConfig{APIKey: "sk-ds"},
		TaskRoutes: map[string]string{"analysis": "deepseek", "teaching": "google", "notes": "ollama"},
	}}

	// Unknown tasks and providers are skipped rather than fatal.
	router := newAIRouter(cfg)
	if !router.HasProvider() {
		t.Fatal("HasProvider() = false")
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "users.db")},
		Auth:     config.AuthConfig{Pepper: "test-pepper"},
	}

	st, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer closeStore()

	ctx := context.Background()
	if err := st.Register(ctx, "asha", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := st.Login(ctx, "asha", "s3cret"); err != nil {
		t.Errorf("Login() error = %v", err)
	}
	if _, err := st.History(ctx, "asha"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("History() error = %v, want ErrNotFound", err)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "mysql"}, Auth: config.AuthConfig{Pepper: "p"}}

	if _, _, err := openStore(context.Background(), cfg); err == nil {
		t.Error("openStore() should reject an unknown driver")
	}
}
