package config

import (
	"log"
	"os"
	"path/filepath"

	"equipment-checklist-api/store"
)

// Store is the shared record-store handle, initialized once per process.
// The backing workbook offers no locking; concurrent processes pointed at
// the same file race with last-writer-wins semantics.
var Store *store.Store

// InitStore opens (or creates) the workbook configured via STORE_PATH.
func InitStore() {
	path := os.Getenv("STORE_PATH")
	if path == "" {
		path = filepath.Join("data", "checklist.xlsx")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatal("Failed to create data directory:", err)
		}
	}

	var err error
	Store, err = store.Open(path)
	if err != nil {
		log.Fatal("Failed to open record store:", err)
	}

	log.Println("Record store opened successfully")
}
