package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"equipment-checklist-api/services"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadChecklistSpanishKeys(t *testing.T) {
	path := writeConfig(t, `{
		"equipos": [
			{"nombre": "Montacargas-1", "items": [
				{"id": "F1", "texto": "Frenos responden"},
				{"id": 2, "texto": "Luces funcionan"}
			]}
		]
	}`)

	cfg, err := LoadChecklist(path)
	if err != nil {
		t.Fatalf("LoadChecklist returned error: %v", err)
	}
	if len(cfg.Equipment) != 1 || cfg.Equipment[0].Name != "Montacargas-1" {
		t.Fatalf("unexpected equipment: %+v", cfg.Equipment)
	}
	items := cfg.Equipment[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "F1" || items[0].Text != "Frenos responden" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	// Numeric ids stringify without float formatting.
	if items[1].ID != "2" {
		t.Fatalf("expected numeric id to load as \"2\", got %q", items[1].ID)
	}
}

func TestLoadChecklistEnglishKeysAndDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"equipment": [
			{"name": "Forklift-1", "items": [
				{"text": "Brakes respond"},
				{"item": "Horn works"},
				{"name": "Mirrors intact"},
				{}
			]}
		]
	}`)

	cfg, err := LoadChecklist(path)
	if err != nil {
		t.Fatalf("LoadChecklist returned error: %v", err)
	}
	items := cfg.Equipment[0].Items
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	// Missing ids fall back to positional ones.
	for i, want := range []string{"I1", "I2", "I3", "I4"} {
		if items[i].ID != want {
			t.Fatalf("item %d: expected id %s, got %s", i, want, items[i].ID)
		}
	}
	if items[1].Text != "Horn works" || items[2].Text != "Mirrors intact" {
		t.Fatalf("text key variants not honored: %+v", items)
	}
	if items[3].Text != "Item 4" {
		t.Fatalf("expected placeholder text for empty item, got %q", items[3].Text)
	}
}

func TestLoadChecklistSkipsNamelessEquipment(t *testing.T) {
	path := writeConfig(t, `{
		"equipos": [
			{"items": [{"texto": "orphan item"}]},
			{"nombre": "  ", "items": []},
			{"nombre": "Grua-1", "items": []}
		]
	}`)

	cfg, err := LoadChecklist(path)
	if err != nil {
		t.Fatalf("LoadChecklist returned error: %v", err)
	}
	if len(cfg.Equipment) != 1 || cfg.Equipment[0].Name != "Grua-1" {
		t.Fatalf("nameless equipment must be skipped, got %+v", cfg.Equipment)
	}
}

func TestLoadChecklistEmptyDocument(t *testing.T) {
	cfg, err := LoadChecklist(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("LoadChecklist returned error: %v", err)
	}
	if len(cfg.Equipment) != 0 {
		t.Fatalf("expected no equipment, got %+v", cfg.Equipment)
	}
	if names := cfg.Names(); len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
}

func TestLoadChecklistErrors(t *testing.T) {
	var cerr *services.ConfigurationError
	if _, err := LoadChecklist(filepath.Join(t.TempDir(), "missing.json")); !errors.As(err, &cerr) {
		t.Fatalf("missing file: expected ConfigurationError, got %v", err)
	}
	if _, err := LoadChecklist(writeConfig(t, `{not json`)); !errors.As(err, &cerr) {
		t.Fatalf("malformed document: expected ConfigurationError, got %v", err)
	}
}

func TestChecklistLookups(t *testing.T) {
	path := writeConfig(t, `{
		"equipos": [
			{"nombre": "Montacargas-1", "items": [{"id": "F1", "texto": "Frenos"}]},
			{"nombre": "Grua-1", "items": [{"id": "G1", "texto": "Cables"}]}
		]
	}`)
	cfg, err := LoadChecklist(path)
	if err != nil {
		t.Fatalf("LoadChecklist returned error: %v", err)
	}

	names := cfg.Names()
	if len(names) != 2 || names[0] != "Montacargas-1" || names[1] != "Grua-1" {
		t.Fatalf("unexpected names: %v", names)
	}
	items, ok := cfg.ItemsFor("Grua-1")
	if !ok || len(items) != 1 || items[0].ID != "G1" {
		t.Fatalf("unexpected lookup result: ok=%v items=%+v", ok, items)
	}
	if _, ok := cfg.ItemsFor("Excavadora-9"); ok {
		t.Fatal("unknown equipment must not resolve")
	}
}
