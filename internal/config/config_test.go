package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "" || cfg.Redis.Addr != "" || cfg.Postgres.URL != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	if got := cfg.QuestionsPath(); got != "questions.txt" {
		t.Fatalf("QuestionsPath = %q, want questions.txt", got)
	}
	if got := cfg.DataPath("", "used_ids.txt"); got != "used_ids.txt" {
		t.Fatalf("DataPath = %q, want used_ids.txt", got)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := `
server:
  port: "9090"
  cors_origins: ["http://localhost:3000"]
quiz:
  questions_file: data/questions.txt
  session_window: 3m
data:
  dir: /var/lib/quiz
  used_ids_file: consumed.txt
redis:
  addr: localhost:6379
  db: 2
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port = %q, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Redis.DB != 2 {
		t.Fatalf("redis db = %d, want 2", cfg.Redis.DB)
	}
	if got := cfg.QuestionsPath(); got != "data/questions.txt" {
		t.Fatalf("QuestionsPath = %q", got)
	}
	if got := cfg.DataPath(cfg.Data.UsedIDsFile, "used_ids.txt"); got != filepath.Join("/var/lib/quiz", "consumed.txt") {
		t.Fatalf("DataPath = %q", got)
	}
	if got := Duration(cfg.Quiz.SessionWindow, time.Minute); got != 3*time.Minute {
		t.Fatalf("session window = %v, want 3m", got)
	}
}

func TestDurationFallback(t *testing.T) {
	if got := Duration("", 2*time.Minute); got != 2*time.Minute {
		t.Fatalf("empty = %v, want fallback", got)
	}
	if got := Duration("not-a-duration", 2*time.Minute); got != 2*time.Minute {
		t.Fatalf("invalid = %v, want fallback", got)
	}
	if got := Duration("90s", 2*time.Minute); got != 90*time.Second {
		t.Fatalf("parsed = %v, want 90s", got)
	}
}
