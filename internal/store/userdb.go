package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/profile"
)

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("user with this email already exists")

// RegisteredUser is one row in the local registration database.
type RegisteredUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

var (
	userDB     *sql.DB
	userDBOnce sync.Once
	userDBErr  error
)

// openUserDB opens (or creates) the SQLite registration database.
// Path comes from config; defaults to ~/.go_career/users.db.
func openUserDB() (*sql.DB, error) {
	userDBOnce.Do(func() {
		dbPath := engine.Cfg.UsersDBPath
		if dbPath == "" {
			dbPath = filepath.Join(os.Getenv("HOME"), ".go_career", "users.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			userDBErr = fmt.Errorf("userdb: mkdir %s: %w", filepath.Dir(dbPath), err)
			return
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			userDBErr = fmt.Errorf("userdb: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initUserSchema(db); err != nil {
			userDBErr = fmt.Errorf("userdb: init schema: %w", err)
			return
		}
		userDB = db
	})
	return userDB, userDBErr
}

// initUserSchema creates the users table if it doesn't exist.
func initUserSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		profile_data TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`)
	return err
}

// RegisterUser stores a new user with their full profile document.
// Duplicate emails are rejected with ErrEmailTaken.
func RegisterUser(ctx context.Context, p profile.UserProfile) (*RegisteredUser, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	db, err := openUserDB()
	if err != nil {
		return nil, err
	}

	var exists int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, p.Email,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("userdb: check email: %w", err)
	}
	if exists > 0 {
		return nil, ErrEmailTaken
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("userdb: marshal profile: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, profile_data, created_at) VALUES (?, ?, ?, ?)`,
		p.Name, p.Email, string(doc), now,
	)
	if err != nil {
		return nil, fmt.Errorf("userdb: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("userdb: last insert id: %w", err)
	}

	engine.IncrRegistrations()
	return &RegisteredUser{ID: id, Name: p.Name, Email: p.Email, CreatedAt: now}, nil
}

// GetRegisteredProfile loads the stored profile document for an email.
func GetRegisteredProfile(ctx context.Context, email string) (profile.UserProfile, error) {
	db, err := openUserDB()
	if err != nil {
		return profile.UserProfile{}, err
	}

	var doc string
	err = db.QueryRowContext(ctx,
		`SELECT profile_data FROM users WHERE email = ?`, email,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("userdb: get %s: %w", email, err)
	}

	var p profile.UserProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return profile.UserProfile{}, fmt.Errorf("userdb: decode %s: %w", email, err)
	}
	return p, nil
}

// UpdateRegisteredProfile replaces the stored profile document for an email.
func UpdateRegisteredProfile(ctx context.Context, p profile.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	db, err := openUserDB()
	if err != nil {
		return err
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("userdb: marshal profile: %w", err)
	}
	res, err := db.ExecContext(ctx,
		`UPDATE users SET name = ?, profile_data = ? WHERE email = ?`,
		p.Name, string(doc), p.Email,
	)
	if err != nil {
		return fmt.Errorf("userdb: update %s: %w", p.Email, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
