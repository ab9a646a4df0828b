package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Stores bundles the repositories backed by one database.
type Stores struct {
	DB          *sql.DB
	Tasks       TaskRepository
	Categories  CategoryRepository
	Preferences PreferencesRepository
	Users       UserRepository
}

// OpenStores connects to driver ("postgres" or "sqlite") and applies the
// schema. dsn is a PostgreSQL URL or an SQLite path.
func OpenStores(ctx context.Context, driver, dsn string) (Stores, error) {
	switch driver {
	case "sqlite":
		db, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return Stores{}, err
		}
		return Stores{
			DB:          db,
			Tasks:       NewSQLiteTask(db),
			Categories:  NewSQLiteCategory(db),
			Preferences: NewSQLitePreferences(db),
			Users:       NewSQLiteUser(db),
		}, nil
	case "postgres":
		db, err := NewDB(ctx, dsn)
		if err != nil {
			return Stores{}, err
		}
		return Stores{
			DB:          db,
			Tasks:       NewPostgresTask(db),
			Categories:  NewPostgresCategory(db),
			Preferences: NewPostgresPreferences(db),
			Users:       NewPostgresUser(db),
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown store driver %q", driver)
	}
}

func (s Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
