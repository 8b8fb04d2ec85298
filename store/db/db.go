package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/store"
	"github.com/hrygo/officehours/store/db/postgres"
	"github.com/hrygo/officehours/store/db/sqlite"
)

// PostgreSQL (pgvector) is the production driver. SQLite keeps a single-node
// deployment self-contained; it ranks documents in Go.
// The "memory" driver has no database and is served by vector.MemoryStore.

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'postgres' and 'sqlite' are database backed", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
