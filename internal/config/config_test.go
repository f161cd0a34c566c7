package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oninross/elementara/internal/game"
)

const validConfig = `{
  "server": {"address": ":9090"},
  "creature_lines": [
    {
      "line": "Drakalayo",
      "element": "Fire",
      "creatures": [
        {"name": "Sigael", "stage": 0, "hp": 90, "weakness": "Water", "resistance": "Air"},
        {"name": "Drakalayo", "stage": 1, "hp": 120, "weakness": "Water", "resistance": "Earth"},
        {"name": "Infernuko", "stage": 2, "hp": 150, "weakness": "Water", "resistance": "Earth"}
      ]
    }
  ]
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elementara_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.ServerAddress)
	}
	if len(cfg.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(cfg.Templates))
	}

	base := cfg.Templates[0]
	if base.ID != "sigael" || base.Stage != game.StageBasic {
		t.Fatalf("unexpected base template: %+v", base)
	}
	if base.Weakness != game.Water || base.Resistance != game.Air {
		t.Fatalf("unexpected matchups: %+v", base)
	}
	want := []string{"sigael", "drakalayo", "infernuko"}
	for i, id := range base.EvolutionLine {
		if id != want[i] {
			t.Fatalf("evolution line mismatch: %v", base.EvolutionLine)
		}
	}
}

func TestLoadConfig_DefaultAddress(t *testing.T) {
	content := `{"creature_lines": [
    {"line": "L", "element": "Water", "creatures": [
      {"name": "A", "stage": 0, "hp": 80, "weakness": "Earth", "resistance": "Fire"},
      {"name": "B", "stage": 1, "hp": 110, "weakness": "Earth", "resistance": "Fire"},
      {"name": "C", "stage": 2, "hp": 140, "weakness": "Earth", "resistance": "Fire"}
    ]}
  ]}`
	cfg, err := LoadConfig(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %q", cfg.ServerAddress)
	}
}

func TestLoadConfig_RejectsStageOutOfOrder(t *testing.T) {
	content := `{"creature_lines": [
    {"line": "L", "element": "Fire", "creatures": [
      {"name": "A", "stage": 1, "hp": 90, "weakness": "Water", "resistance": "Air"},
      {"name": "B", "stage": 0, "hp": 120, "weakness": "Water", "resistance": "Air"},
      {"name": "C", "stage": 2, "hp": 150, "weakness": "Water", "resistance": "Air"}
    ]}
  ]}`
	if _, err := LoadConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected stage order error")
	}
}

func TestLoadConfig_RejectsShortLine(t *testing.T) {
	content := `{"creature_lines": [
    {"line": "L", "element": "Fire", "creatures": [
      {"name": "A", "stage": 0, "hp": 90, "weakness": "Water", "resistance": "Air"}
    ]}
  ]}`
	if _, err := LoadConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected line length error")
	}
}

func TestLoadConfig_RejectsUnknownElement(t *testing.T) {
	content := `{"creature_lines": [
    {"line": "L", "element": "Plasma", "creatures": [
      {"name": "A", "stage": 0, "hp": 90, "weakness": "Water", "resistance": "Air"},
      {"name": "B", "stage": 1, "hp": 120, "weakness": "Water", "resistance": "Air"},
      {"name": "C", "stage": 2, "hp": 150, "weakness": "Water", "resistance": "Air"}
    ]}
  ]}`
	if _, err := LoadConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected unknown element error")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
