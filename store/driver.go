package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// OfficeDocument model related methods.

	// CreateOfficeDocuments inserts all documents in one transaction.
	CreateOfficeDocuments(ctx context.Context, creates []*OfficeDocument) error
	// SearchOfficeDocuments returns the nearest documents by cosine distance.
	SearchOfficeDocuments(ctx context.Context, search *SearchOfficeDocument) ([]*OfficeDocumentWithScore, error)
	GetOfficeDocumentStats(ctx context.Context) (*OfficeDocumentStats, error)
}
