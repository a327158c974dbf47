package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"championsite-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Credential store operations. The is_active filter is always spelled out in
// the method name and the query, never applied as an invisible default.

func FindActiveAdminByEmail(db *sqlx.DB, email string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var admin models.Admin
	err := db.Get(&admin, `
SELECT id, email, name, password_hash, role, is_active, last_login, password_changed_at, created_at, updated_at
FROM admins
WHERE lower(email) = $1 AND is_active = TRUE
`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrUnauthorized("Invalid credentials")
	}
	return admin, err
}

func ListActiveAdmins(db *sqlx.DB) ([]models.Admin, error) {
	admins := []models.Admin{}
	err := db.Select(&admins, `
SELECT id, email, name, password_hash, role, is_active, last_login, password_changed_at, created_at, updated_at
FROM admins
WHERE is_active = TRUE
ORDER BY created_at ASC
`)
	return admins, err
}

func CreateAdmin(db *sqlx.DB, tokens TokenService, name, email, password, role string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return models.Admin{}, ErrBadRequest("Name, email and password are required")
	}
	if role == "" {
		role = RoleAdmin
	}
	if !ValidRole(role) {
		return models.Admin{}, ErrBadRequest("Role must be Admin or SuperAdmin")
	}
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM admins WHERE lower(email) = $1)`, email); err != nil {
		return models.Admin{}, err
	}
	if exists {
		return models.Admin{}, ErrConflict("Admin already exists")
	}
	hash, err := tokens.HashPassword(password)
	if err != nil {
		return models.Admin{}, err
	}
	now := time.Now().UTC()
	admin := models.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = db.Exec(`
INSERT INTO admins (id, email, name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,TRUE,$6,$6)
`, admin.ID, admin.Email, admin.Name, admin.PasswordHash, admin.Role, now)
	return admin, err
}

func UpdateAdminRole(db *sqlx.DB, adminID, role string) error {
	if !ValidRole(role) {
		return ErrBadRequest("Role must be Admin or SuperAdmin")
	}
	result, err := db.Exec(`UPDATE admins SET role = $1, updated_at = $2 WHERE id = $3 AND is_active = TRUE`, role, time.Now().UTC(), adminID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Admin not found")
	}
	return nil
}

// DeactivateAdmin soft-deletes: the row stays but drops out of the active
// lookups, so the email cannot be reused for a new account.
func DeactivateAdmin(db *sqlx.DB, adminID string) error {
	result, err := db.Exec(`UPDATE admins SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`, time.Now().UTC(), adminID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Admin not found")
	}
	return nil
}

func SetAdminLastLogin(db *sqlx.DB, adminID string) error {
	_, err := db.Exec(`UPDATE admins SET last_login = $1 WHERE id = $2`, time.Now().UTC(), adminID)
	return err
}

func ChangeAdminPassword(db *sqlx.DB, tokens TokenService, adminID, current, next string) error {
	var hash string
	err := db.Get(&hash, `SELECT password_hash FROM admins WHERE id = $1 AND is_active = TRUE`, adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound("Admin not found")
	}
	if err != nil {
		return err
	}
	if !tokens.VerifyPassword(current, hash) {
		return ErrUnauthorized("Invalid credentials")
	}
	newHash, err := tokens.HashPassword(next)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`UPDATE admins SET password_hash = $1, password_changed_at = $2, updated_at = $2 WHERE id = $3`, newHash, now, adminID)
	return err
}
