// Package store wraps the embedded sqlite engine behind a collection-scoped
// record store with an explicit open/close lifecycle, so callers (and tests)
// hold their own handle instead of sharing an ambient connection.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/openinvoice/openinvoice/internal/models"
)

// SchemaVersion is the single supported schema version. Collections are
// created lazily on first open; version bumps must stay additive.
const SchemaVersion = 1

// SchemaVersionKey is the settings entry recording the bootstrapped version.
const SchemaVersionKey = "schema_version"

var collectionModels = []any{
	&models.Invoice{},
	&models.Client{},
	&models.BusinessDetails{},
	&models.Setting{},
}

var collectionNames = []string{"invoices", "clients", "business", "settings"}

// Store owns one embedded database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema. Any failure here is ErrStorageUnavailable: fatal for the session.
// path accepts sqlite DSNs, so tests can pass file:...?mode=memory DSNs.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrStorageUnavailable)
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s := &Store{db: db}
	if err := s.bootstrap(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// bootstrap creates collections and indexes if the recorded schema version is
// missing or older than SchemaVersion. Re-running at the same version is a
// no-op; nothing is ever dropped.
func (s *Store) bootstrap() error {
	if s.db.Migrator().HasTable(&models.Setting{}) {
		var rec models.Setting
		if err := s.db.First(&rec, "key = ?", SchemaVersionKey).Error; err == nil {
			var v int
			if json.Unmarshal(rec.Value, &v) == nil && v >= SchemaVersion {
				return nil
			}
		}
	}
	if err := s.db.AutoMigrate(collectionModels...); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	ver, _ := json.Marshal(SchemaVersion)
	rec := models.Setting{Key: SchemaVersionKey, Value: ver}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Transaction runs fn against a store scoped to a single transaction; any
// error from fn rolls back every write applied inside it.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(&Store{db: txdb})
	})
}

// Reset clears every collection. The schema itself stays in place.
func (s *Store) Reset(ctx context.Context) error {
	for _, name := range collectionNames {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + name).Error; err != nil {
			return classify(err)
		}
	}
	return nil
}

// CollectionNames lists the collections in schema order.
func (s *Store) CollectionNames() []string {
	out := make([]string, len(collectionNames))
	copy(out, collectionNames)
	return out
}

// DumpCollection returns every record of the named collection as raw rows.
// Used by storage accounting, which needs an engine-independent byte view.
func (s *Store) DumpCollection(ctx context.Context, name string) ([]map[string]any, error) {
	known := false
	for _, n := range collectionNames {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Table(name).Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	return rows, nil
}
