package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const storageKey = "preferences"

// FileStorage keeps preferences as one small JSON file per session
// directory, beside the cart snapshot.
type FileStorage struct {
	path string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs data dir: %w", err)
	}
	return &FileStorage{path: filepath.Join(dir, storageKey+".json")}, nil
}

func (f *FileStorage) Load(_ context.Context) (Preferences, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, fmt.Errorf("read prefs file: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, false, fmt.Errorf("parse prefs file: %w", err)
	}
	return p, true, nil
}

func (f *FileStorage) Save(_ context.Context, p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	return nil
}

// PostgresStorage keeps one preferences row per session key.
type PostgresStorage struct {
	db         *sql.DB
	sessionKey string
}

func NewPostgresStorage(db *sql.DB, sessionKey string) *PostgresStorage {
	return &PostgresStorage{db: db, sessionKey: sessionKey}
}

func (p *PostgresStorage) Load(ctx context.Context) (Preferences, bool, error) {
	var prefs Preferences
	err := p.db.QueryRowContext(ctx,
		`SELECT color_theme, mode FROM preferences WHERE session_key = $1`,
		p.sessionKey).Scan(&prefs.ColorTheme, &prefs.Mode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, fmt.Errorf("select preferences: %w", err)
	}
	return prefs, true, nil
}

func (p *PostgresStorage) Save(ctx context.Context, prefs Preferences) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO preferences (session_key, color_theme, mode, updated_at)
         VALUES ($1, $2, $3, NOW())
         ON CONFLICT (session_key) DO UPDATE
         SET color_theme = EXCLUDED.color_theme, mode = EXCLUDED.mode, updated_at = NOW()`,
		p.sessionKey, prefs.ColorTheme, prefs.Mode)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}
