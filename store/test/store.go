package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/store"
	"github.com/hrygo/officehours/store/db"
)

// getDriverFromEnv returns the driver under test: DRIVER=postgres opts into
// the container-backed run, anything else tests sqlite.
func getDriverFromEnv() string {
	if os.Getenv("DRIVER") == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// NewTestingStore opens and migrates a fresh store for driver.
func NewTestingStore(ctx context.Context, t *testing.T, driver string) *store.Store {
	t.Helper()

	prof := &profile.Profile{Mode: "dev", Driver: driver}
	switch driver {
	case "sqlite":
		prof.Data = t.TempDir()
		prof.DSN = filepath.Join(prof.Data, "officehours_test.db")
	case "postgres":
		prof.DSN = GetPostgresDSN(t)
	default:
		t.Fatalf("unsupported driver %q", driver)
	}

	dbDriver, err := db.NewDBDriver(prof)
	require.NoError(t, err)

	ts := store.New(dbDriver, prof)
	t.Cleanup(func() { _ = ts.Close() })

	require.NoError(t, ts.Migrate(ctx))
	return ts
}
