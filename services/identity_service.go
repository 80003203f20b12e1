package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
	"equipment-checklist-api/utils"
)

// Password hashing schemes. The legacy scheme is an unsalted sha256 digest,
// kept as the storage default for compatibility with existing user rows.
// Hashes written by the bcrypt scheme (or by cmd/migrate-passwords) carry
// the usual $2 prefix and verify through bcrypt instead.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// IdentityService manages user records in the users table.
type IdentityService struct {
	Store  *store.Store
	Scheme string
}

// NewIdentityService builds an identity service over the given store. The
// hashing scheme for new passwords comes from PASSWORD_SCHEME.
func NewIdentityService(s *store.Store) *IdentityService {
	scheme := strings.ToLower(os.Getenv("PASSWORD_SCHEME"))
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	return &IdentityService{Store: s, Scheme: scheme}
}

// Lookup finds a user by username, case-insensitively.
func (s *IdentityService) Lookup(username string) (models.User, error) {
	row, found, err := s.Store.FindByKey(store.TableUsers, "username", username)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, &NotFoundError{Entity: "user", Key: username}
	}
	return models.UserFromRow(row), nil
}

// Authenticate verifies username and password. Unknown users, inactive users
// and wrong passwords are all rejected with ErrAuthRejected.
func (s *IdentityService) Authenticate(username, password string) (models.User, error) {
	user, err := s.Lookup(username)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return models.User{}, ErrAuthRejected
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrAuthRejected
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrAuthRejected
	}
	return user, nil
}

// CreateOrUpdate appends a new user or overwrites fields of an existing one.
// On create the password is mandatory; on update an empty password keeps the
// stored hash.
func (s *IdentityService) CreateOrUpdate(username, role, fullName string, isActive bool, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if !utils.ValidateUsername(username) {
		return models.User{}, &ValidationError{Msg: "invalid username: use at least 3 characters (letters, digits, . _ -)"}
	}
	if !models.ValidRole(role) {
		return models.User{}, &ValidationError{Msg: fmt.Sprintf("invalid role %q", role)}
	}

	existing, found, err := s.Store.FindByKey(store.TableUsers, "username", username)
	if err != nil {
		return models.User{}, err
	}

	if !found {
		if password == "" {
			return models.User{}, &ValidationError{Msg: "password is required when creating a user"}
		}
		hash, err := s.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		user := models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         role,
			FullName:     fullName,
			IsActive:     isActive,
			CreatedAt:    nowISO(),
		}
		if err := s.Store.Append(store.TableUsers, user.Row()); err != nil {
			return models.User{}, err
		}
		return user, nil
	}

	updates := map[string]string{
		"role":      role,
		"full_name": fullName,
		"is_active": fmt.Sprintf("%t", isActive),
	}
	if password != "" {
		hash, err := s.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = hash
	}
	ok, err := s.Store.UpdateFieldsByKey(store.TableUsers, "username", username, updates)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		// The row matched a moment ago and is gone now.
		return models.User{}, &IntegrityError{Msg: "user row vanished during update: " + username}
	}

	user := models.UserFromRow(existing)
	user.Role = role
	user.FullName = fullName
	user.IsActive = isActive
	return user, nil
}

// Delete removes a user record. The bootstrap admin account is protected.
func (s *IdentityService) Delete(username string) error {
	if strings.EqualFold(strings.TrimSpace(username), models.AdminUsername) {
		return &ValidationError{Msg: "the admin account cannot be deleted"}
	}
	n, err := s.Store.DeleteAllByKey(store.TableUsers, "username", username)
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Entity: "user", Key: username}
	}
	return nil
}

// List returns every user record in insertion order.
func (s *IdentityService) List() ([]models.User, error) {
	rows, err := s.Store.AllRows(store.TableUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, models.UserFromRow(r))
	}
	return users, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *IdentityService) ChangePassword(username, current, newPassword string) error {
	if newPassword == "" {
		return &ValidationError{Msg: "new password must not be empty"}
	}
	user, err := s.Lookup(username)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, user.PasswordHash) {
		return &ValidationError{Msg: "current password is incorrect"}
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	ok, err := s.Store.UpdateFieldsByKey(store.TableUsers, "username", username,
		map[string]string{"password_hash": hash})
	if err != nil {
		return err
	}
	if !ok {
		return &IntegrityError{Msg: "user row vanished during password change: " + username}
	}
	return nil
}

// SeedAdmin creates the bootstrap supervisor account if and only if the
// users table is empty.
func (s *IdentityService) SeedAdmin() error {
	rows, err := s.Store.AllRows(store.TableUsers)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	hash, err := s.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     models.AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleSupervisor,
		FullName:     "Administrador",
		IsActive:     true,
		CreatedAt:    nowISO(),
	}
	return s.Store.Append(store.TableUsers, admin.Row())
}

// HashPassword hashes a password under the configured scheme.
func (s *IdentityService) HashPassword(password string) (string, error) {
	if s.Scheme == SchemeBcrypt {
		bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(bytes), err
	}
	return SHA256Hex(password), nil
}

// VerifyPassword checks a password against a stored hash of either scheme.
// Bcrypt hashes produced by cmd/migrate-passwords wrap the legacy digest, so
// both the raw password and its sha256 form are attempted.
func VerifyPassword(password, hash string) bool {
	if strings.HasPrefix(hash, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
			return true
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(SHA256Hex(password))) == nil
	}
	return hash == SHA256Hex(password)
}

// SHA256Hex is the legacy unsalted password digest. A known weakness of the
// stored data format; see cmd/migrate-passwords for the upgrade path.
func SHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
