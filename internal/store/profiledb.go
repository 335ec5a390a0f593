// Package store holds the two persistence sinks: a Postgres document store
// for merged profiles and a local SQLite registration database.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/profile"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ErrProfileNotFound is returned when no profile exists for an email.
var ErrProfileNotFound = errors.New("profile not found")

// Package-level singleton, set from main.go.
var profileDB *ProfileDB

// SetProfileDB sets the package-level profile DB instance.
func SetProfileDB(db *ProfileDB) { profileDB = db }

// GetProfileDB returns the package-level profile DB instance (may be nil).
func GetProfileDB() *ProfileDB { return profileDB }

// ProfileDB persists merged profiles as JSONB documents keyed by email,
// with the numeric profile id as the stable row key.
type ProfileDB struct {
	pool *pgxpool.Pool
}

// ConnectProfileDB creates a pgx pool and runs schema migrations.
func ConnectProfileDB(ctx context.Context, databaseURL string) (*ProfileDB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &ProfileDB{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("profile postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *ProfileDB) Close() {
	db.pool.Close()
}

func (db *ProfileDB) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// UpsertProfile writes the full profile document, replacing any previous
// version for the same email.
func (db *ProfileDB) UpsertProfile(ctx context.Context, p profile.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, email, name, profile_data, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name, profile_data = EXCLUDED.profile_data, updated_at = now()`,
		p.ID, p.Email, p.Name, doc,
	)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.Email, err)
	}
	engine.IncrProfileSaves()
	return nil
}

// GetProfileByEmail loads a stored profile document.
func (db *ProfileDB) GetProfileByEmail(ctx context.Context, email string) (profile.UserProfile, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile_data FROM profiles WHERE email = $1`, email,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("get profile %s: %w", email, err)
	}

	var p profile.UserProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return profile.UserProfile{}, fmt.Errorf("decode profile %s: %w", email, err)
	}
	return p, nil
}
