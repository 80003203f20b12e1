// Migration tool: wrap legacy unsalted sha256 password digests in bcrypt.
// After migration, hashes carry the $2 prefix and verify through bcrypt
// against the legacy digest, so users keep their existing passwords.
package main

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"equipment-checklist-api/config"
	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Open the record store
	config.InitStore()
	defer config.Store.Close()

	rows, err := config.Store.AllRows(store.TableUsers)
	if err != nil {
		log.Fatal("Failed to fetch users:", err)
	}

	for _, row := range rows {
		user := models.UserFromRow(row)

		// Skip if already migrated (bcrypt hashes start with $2)
		if strings.HasPrefix(user.PasswordHash, "$2") {
			log.Printf("User %s already has a bcrypt hash, skipping\n", user.Username)
			continue
		}

		wrapped, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password for user %s: %v\n", user.Username, err)
			continue
		}

		ok, err := config.Store.UpdateFieldsByKey(store.TableUsers, "username", user.Username,
			map[string]string{"password_hash": string(wrapped)})
		if err != nil || !ok {
			log.Printf("Failed to update password for user %s: %v\n", user.Username, err)
			continue
		}

		log.Printf("Successfully updated password hash for user %s\n", user.Username)
	}

	log.Println("Password migration completed!")
}
