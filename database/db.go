package database

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/blogem/enquiry-desk/config"
)

// Dialect identifies the SQL flavour of the open connection
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

var (
	db      *sql.DB
	dialect Dialect = SQLite
)

// OpenDB opens the connection described by the database config
func OpenDB(cfg config.DatabaseConfig) error {
	var err error
	if cfg.IsPostgres() {
		dialect = Postgres
		db, err = sql.Open("postgres", cfg.URL)
	} else {
		dialect = SQLite
		db, err = sql.Open("sqlite3", cfg.GetSQLitePath())
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == Postgres {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxIdleConns)
		db.SetConnMaxLifetime(connMaxLifetime)
	} else {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
		if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return nil
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(cfg config.DatabaseConfig) error {
	if err := OpenDB(cfg); err != nil {
		return err
	}

	if err := RunMigrations(db, dialect); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("[DB] Database initialized successfully (%s)", dialect)
	return nil
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// GetDialect returns the dialect of the open connection
func GetDialect() Dialect {
	return dialect
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Rebind rewrites ? placeholders into the dialect's bind syntax
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inString := false
	for _, ch := range query {
		switch {
		case ch == '\'':
			inString = !inString
			b.WriteRune(ch)
		case ch == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
