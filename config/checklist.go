package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"equipment-checklist-api/models"
	"equipment-checklist-api/services"
)

// Checklist holds the equipment definitions, loaded once per process.
var Checklist *models.ChecklistConfig

// InitChecklist loads the equipment configuration from CHECKLIST_CONFIG
// (default checklist_config.json). Missing or unreadable configuration is
// fatal at startup.
func InitChecklist() {
	path := os.Getenv("CHECKLIST_CONFIG")
	if path == "" {
		path = "checklist_config.json"
	}

	cfg, err := LoadChecklist(path)
	if err != nil {
		log.Fatal("Failed to load checklist configuration:", err)
	}
	if len(cfg.Equipment) == 0 {
		log.Println("Warning: checklist configuration defines no equipment")
	}

	Checklist = cfg
	log.Printf("Checklist configuration loaded (%d equipment)", len(cfg.Equipment))
}

// The document historically spells its keys in more than one way; each raw
// type lists the accepted variants. Unknown equipment stays absent rather
// than being fabricated.
type rawChecklist struct {
	Equipos   []rawEquipment `json:"equipos"`
	Equipment []rawEquipment `json:"equipment"`
}

type rawEquipment struct {
	Nombre string    `json:"nombre"`
	Name   string    `json:"name"`
	Items  []rawItem `json:"items"`
}

type rawItem struct {
	ID    json.RawMessage `json:"id"`
	Texto string          `json:"texto"`
	Text  string          `json:"text"`
	Item  string          `json:"item"`
	Name  string          `json:"name"`
}

// LoadChecklist parses an equipment definition document.
func LoadChecklist(path string) (*models.ChecklistConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &services.ConfigurationError{Msg: fmt.Sprintf("read checklist config %s: %v", path, err)}
	}

	var raw rawChecklist
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &services.ConfigurationError{Msg: fmt.Sprintf("parse checklist config %s: %v", path, err)}
	}

	defs := raw.Equipos
	if len(defs) == 0 {
		defs = raw.Equipment
	}

	cfg := &models.ChecklistConfig{}
	for _, e := range defs {
		name := firstNonEmpty(e.Nombre, e.Name)
		if name == "" {
			continue
		}
		eq := models.Equipment{Name: name}
		for i, it := range e.Items {
			id := rawID(it.ID)
			if id == "" {
				id = fmt.Sprintf("I%d", i+1)
			}
			text := firstNonEmpty(it.Texto, it.Text, it.Item, it.Name)
			if text == "" {
				text = fmt.Sprintf("Item %d", i+1)
			}
			eq.Items = append(eq.Items, models.ChecklistItem{ID: id, Text: text})
		}
		cfg.Equipment = append(cfg.Equipment, eq)
	}
	return cfg, nil
}

// rawID stringifies an item id that may be a JSON string or number.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
