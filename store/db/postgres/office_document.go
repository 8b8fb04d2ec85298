package postgres

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/hrygo/officehours/store"
)

// CreateOfficeDocuments inserts documents in one transaction.
func (d *DB) CreateOfficeDocuments(ctx context.Context, creates []*store.OfficeDocument) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO office_document (id, content, office_name, timezone, country, embedding, created_ts)
		VALUES (`+placeholders(7)+`)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for _, create := range creates {
		if _, err := stmt.ExecContext(ctx,
			create.ID,
			create.Content,
			create.OfficeName,
			create.Timezone,
			create.Country,
			pgvector.NewVector(create.Embedding),
			create.CreatedTs,
		); err != nil {
			return errors.Wrapf(err, "failed to insert office document %s", create.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit office documents")
	}
	return nil
}

// SearchOfficeDocuments performs vector similarity search using pgvector.
func (d *DB) SearchOfficeDocuments(ctx context.Context, search *store.SearchOfficeDocument) ([]*store.OfficeDocumentWithScore, error) {
	limit := search.Limit
	if limit <= 0 {
		limit = 3
	}

	// <=> is cosine distance (1 - cosine similarity); ties fall back to insertion order.
	query := `
		SELECT id, content, office_name, timezone, country, created_ts,
			1 - (embedding <=> ` + placeholder(1) + `) AS score
		FROM office_document
		ORDER BY embedding <=> ` + placeholder(1) + `, seq ASC
		LIMIT ` + placeholder(2)

	rows, err := d.db.QueryContext(ctx, query, pgvector.NewVector(search.Vector), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search office documents")
	}
	defer rows.Close()

	list := []*store.OfficeDocumentWithScore{}
	for rows.Next() {
		doc := &store.OfficeDocument{}
		var score float64
		if err := rows.Scan(
			&doc.ID,
			&doc.Content,
			&doc.OfficeName,
			&doc.Timezone,
			&doc.Country,
			&doc.CreatedTs,
			&score,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan office document")
		}
		list = append(list, &store.OfficeDocumentWithScore{Document: doc, Score: float32(score)})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) GetOfficeDocumentStats(ctx context.Context) (*store.OfficeDocumentStats, error) {
	stats := &store.OfficeDocumentStats{}
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(vector_dims(embedding)), 0) FROM office_document`,
	).Scan(&stats.Count, &stats.Dimensions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count office documents")
	}
	return stats, nil
}
