package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != "lostfound.sqlite3" {
		t.Errorf("unexpected database path %q", cfg.Database.Path)
	}
	if cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.LLM.Timeout)
	}
	if cfg.LLM.APIKey != "" {
		t.Errorf("expected no api key, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", cfg.LLM.Temperature)
	}
	if cfg.Notify.RedisChannel != "lostfound:events" {
		t.Errorf("unexpected channel %q", cfg.Notify.RedisChannel)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := `server:
  addr: ":9090"
llm:
  model: gpt-4o-mini
  timeout: 3s
  temperature: 0.7
notify:
  redis_addr: localhost:6379
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOSTFOUND_DATABASE_PATH", "/tmp/lf.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected file addr, got %q", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Timeout != 3*time.Second || cfg.LLM.Temperature != 0.7 {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.Database.Path != "/tmp/lf.db" {
		t.Errorf("expected env database path, got %q", cfg.Database.Path)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected OPENAI_API_KEY alias, got %q", cfg.LLM.APIKey)
	}
	if cfg.Notify.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Notify.RedisAddr)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
