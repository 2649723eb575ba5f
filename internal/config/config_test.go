package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir moves the test into dir so a config.yaml in the repo cannot leak in.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != defaultBackendURL {
		t.Fatalf("BackendURL = %q, want default", cfg.BackendURL)
	}
	if cfg.Environment != "development" {
		t.Fatalf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.HomeDir != filepath.Join(home, QuestifyDir) {
		t.Fatalf("HomeDir = %q", cfg.HomeDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("QUESTIFY_BACKEND_URL", "https://questify.example/api")
	t.Setenv("QUESTIFY_ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "https://questify.example/api" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Environment != "production" {
		t.Fatalf("Environment = %q", cfg.Environment)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, QuestifyDir)
	if err := InitQuestifyDir(dir); err != nil {
		t.Fatalf("InitQuestifyDir: %v", err)
	}
	content := "backend_url: http://museum.local/api\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://museum.local/api" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
}

func TestInitQuestifyDirAndPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), QuestifyDir)
	if err := InitQuestifyDir(dir); err != nil {
		t.Fatalf("InitQuestifyDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}

	cfg := &Config{HomeDir: dir}
	if cfg.LogPath() != filepath.Join(dir, "logs", "questify.log") {
		t.Fatalf("LogPath() = %q", cfg.LogPath())
	}
	if cfg.StatePath() != filepath.Join(dir, "state.yaml") {
		t.Fatalf("StatePath() = %q", cfg.StatePath())
	}
}
