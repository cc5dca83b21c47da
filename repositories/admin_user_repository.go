package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blogem/enquiry-desk/database"
	"github.com/blogem/enquiry-desk/models"
)

// AdminUserRepository interface defines admin account operations
type AdminUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type adminUserRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *sql.DB, dialect database.Dialect) AdminUserRepository {
	return &adminUserRepository{db: db, dialect: dialect}
}

// GetByUsername retrieves an admin user by username
func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := `
		SELECT id, username, email, password_hash, active, created_at, last_login
		FROM admin_users
		WHERE username = ?
	`

	var user models.AdminUser
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
		&lastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("admin user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return &user, nil
}

// Create inserts a new admin user
func (r *adminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO admin_users (username, email, password_hash, active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	args := []any{user.Username, user.Email, user.PasswordHash, user.Active, user.CreatedAt}

	if r.dialect == database.Postgres {
		err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING id"), args...).Scan(&user.ID)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get admin user ID: %w", err)
	}
	user.ID = id

	return nil
}

// UpdateLastLogin records a successful login
func (r *adminUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`), at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
