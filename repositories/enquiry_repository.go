package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/enquiry-desk/database"
	"github.com/blogem/enquiry-desk/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// EnquiryRepository interface defines local enquiry record operations.
// Records are write-once: there is no update.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id int64) (*models.Enquiry, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, limit, offset int) ([]models.Enquiry, error)
	Count(ctx context.Context, query string) (int, error)
}

// enquiryRepository implements EnquiryRepository over database/sql
type enquiryRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewEnquiryRepository creates a new enquiry repository
func NewEnquiryRepository(db *sql.DB, dialect database.Dialect) EnquiryRepository {
	return &enquiryRepository{db: db, dialect: dialect}
}

const enquiryColumns = `id, first_name, last_name, phone, email, created_at, response_code, response_text`

// Create inserts a new enquiry and sets its ID and creation time
func (r *enquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	enquiry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO enquiries (first_name, last_name, phone, email, created_at, response_code, response_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	args := []any{
		enquiry.FirstName,
		enquiry.LastName,
		enquiry.Phone,
		enquiry.Email,
		enquiry.CreatedAt,
		nullableInt(enquiry.ResponseCode),
		enquiry.ResponseText,
	}

	if r.dialect == database.Postgres {
		// lib/pq does not support LastInsertId
		err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING id"), args...).Scan(&enquiry.ID)
		if err != nil {
			return fmt.Errorf("failed to create enquiry: %w", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get enquiry ID: %w", err)
	}
	enquiry.ID = id

	return nil
}

// GetByID retrieves an enquiry by ID
func (r *enquiryRepository) GetByID(ctx context.Context, id int64) (*models.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = ?`

	enquiry, err := scanEnquiry(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enquiry with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	return enquiry, nil
}

// Delete removes an enquiry by ID
func (r *enquiryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM enquiries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("enquiry with ID %d: %w", id, ErrNotFound)
	}

	return nil
}

// Search returns enquiries matching query, newest first. An empty query
// matches everything.
func (r *enquiryRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Enquiry, error) {
	where, args := searchClause(query)
	sqlQuery := `SELECT ` + enquiryColumns + ` FROM enquiries` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(sqlQuery), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := []models.Enquiry{}
	for rows.Next() {
		enquiry, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, *enquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enquiries: %w", err)
	}

	return enquiries, nil
}

// Count returns the number of enquiries matching query
func (r *enquiryRepository) Count(ctx context.Context, query string) (int, error) {
	where, args := searchClause(query)

	var count int
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT COUNT(*) FROM enquiries`+where), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	return count, nil
}

// searchClause builds a case-insensitive substring filter over the contact columns
func searchClause(query string) (string, []any) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	clause := ` WHERE LOWER(first_name) LIKE ? ESCAPE '\'` +
		` OR LOWER(last_name) LIKE ? ESCAPE '\'` +
		` OR LOWER(phone) LIKE ? ESCAPE '\'` +
		` OR LOWER(email) LIKE ? ESCAPE '\'`
	return clause, []any{pattern, pattern, pattern, pattern}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnquiry(row rowScanner) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	var responseCode sql.NullInt64

	err := row.Scan(
		&enquiry.ID,
		&enquiry.FirstName,
		&enquiry.LastName,
		&enquiry.Phone,
		&enquiry.Email,
		&enquiry.CreatedAt,
		&responseCode,
		&enquiry.ResponseText,
	)
	if err != nil {
		return nil, err
	}

	if responseCode.Valid {
		code := int(responseCode.Int64)
		enquiry.ResponseCode = &code
	}

	return &enquiry, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
