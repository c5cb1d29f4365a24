package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/sitekit"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time interface verification.
var _ sitekit.AdminService = (*AdminService)(nil)

// AdminService implements sitekit.AdminService using SQLite.
// Passwords are stored as bcrypt hashes.
type AdminService struct {
	db *DB

	// Cost is the bcrypt cost used for new hashes.
	Cost int
}

// NewAdminService creates a new AdminService.
func NewAdminService(db *DB) *AdminService {
	return &AdminService{db: db, Cost: bcrypt.DefaultCost}
}

// CreateAdmin creates a new admin.
func (s *AdminService) CreateAdmin(ctx context.Context, admin *sitekit.Admin, password string) error {
	admin.Username = normalizeUsername(admin.Username)
	if err := admin.Validate(); err != nil {
		return err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	admin.ID = uuid.New().String()
	admin.PasswordHash = hash
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, admin.ID, admin.Username, admin.PasswordHash,
		admin.CreatedAt.Format(time.RFC3339), admin.UpdatedAt.Format(time.RFC3339))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return sitekit.Errorf(sitekit.ECONFLICT, "admin %q already exists", admin.Username)
	}
	return err
}

// FindAdminByUsername retrieves an admin by username.
func (s *AdminService) FindAdminByUsername(ctx context.Context, username string) (*sitekit.Admin, error) {
	var admin sitekit.Admin
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = ?
	`, normalizeUsername(username)).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, sitekit.Errorf(sitekit.ENOTFOUND, "admin %q not found", username)
	}
	if err != nil {
		return nil, err
	}

	if admin.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if admin.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindAdmins returns all admins ordered by username.
func (s *AdminService) FindAdmins(ctx context.Context) ([]*sitekit.Admin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*sitekit.Admin
	for rows.Next() {
		var admin sitekit.Admin
		var createdAt, updatedAt string
		if err := rows.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if admin.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if admin.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		admins = append(admins, &admin)
	}
	return admins, rows.Err()
}

// UpdatePassword replaces an admin's password.
func (s *AdminService) UpdatePassword(ctx context.Context, username, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE admins SET password_hash = ?, updated_at = ? WHERE username = ?
	`, hash, time.Now().UTC().Format(time.RFC3339), normalizeUsername(username))
	if err != nil {
		return err
	}
	return requireAffected(result, "admin %q not found", username)
}

// Authenticate checks a username/password pair.
// Unknown usernames and wrong passwords produce the same error.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*sitekit.Admin, error) {
	admin, err := s.FindAdminByUsername(ctx, username)
	if sitekit.ErrorCode(err) == sitekit.ENOTFOUND {
		return nil, sitekit.Errorf(sitekit.EUNAUTHORIZED, "invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, sitekit.Errorf(sitekit.EUNAUTHORIZED, "invalid username or password")
	}
	return admin, nil
}

// DeleteAdmin permanently removes an admin.
func (s *AdminService) DeleteAdmin(ctx context.Context, username string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM admins WHERE username = ?", normalizeUsername(username))
	if err != nil {
		return err
	}
	return requireAffected(result, "admin %q not found", username)
}

func (s *AdminService) hashPassword(password string) (string, error) {
	if len(password) < sitekit.MinPasswordLength {
		return "", sitekit.Errorf(sitekit.EINVALID, "password must be at least %d characters", sitekit.MinPasswordLength)
	}
	// bcrypt only looks at the first 72 bytes
	if len(password) > 72 {
		return "", sitekit.Errorf(sitekit.EINVALID, "password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// normalizeUsername makes usernames case-insensitive.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
