package sqlite

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/hrygo/officehours/plugin/ai/vector"
	"github.com/hrygo/officehours/store"
)

// CreateOfficeDocuments inserts documents in one transaction.
// Embeddings are stored as JSON arrays.
func (d *DB) CreateOfficeDocuments(ctx context.Context, creates []*store.OfficeDocument) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) FROM office_document").Scan(&seq); err != nil {
		return errors.Wrap(err, "failed to read document sequence")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO office_document (id, seq, content, office_name, timezone, country, embedding, created_ts)
		VALUES (`+placeholders(8)+`)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for _, create := range creates {
		embedding, err := json.Marshal(create.Embedding)
		if err != nil {
			return errors.Wrap(err, "failed to marshal embedding")
		}
		seq++
		if _, err := stmt.ExecContext(ctx,
			create.ID,
			seq,
			create.Content,
			create.OfficeName,
			create.Timezone,
			create.Country,
			string(embedding),
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

// SearchOfficeDocuments ranks every stored document by cosine similarity.
func (d *DB) SearchOfficeDocuments(ctx context.Context, search *store.SearchOfficeDocument) ([]*store.OfficeDocumentWithScore, error) {
	limit := search.Limit
	if limit <= 0 {
		limit = 3
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, content, office_name, timezone, country, embedding, created_ts
		FROM office_document
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search office documents")
	}
	defer rows.Close()

	docs := []*store.OfficeDocument{}
	scored := []vector.RetrievedDocument{}
	for rows.Next() {
		doc := &store.OfficeDocument{}
		var raw string
		if err := rows.Scan(
			&doc.ID,
			&doc.Content,
			&doc.OfficeName,
			&doc.Timezone,
			&doc.Country,
			&raw,
			&doc.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan office document")
		}
		if err := json.Unmarshal([]byte(raw), &doc.Embedding); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal embedding of %s", doc.ID)
		}
		// Text carries the id so ranked hits map back to docs.
		scored = append(scored, vector.RetrievedDocument{
			Text:  doc.ID,
			Score: vector.CosineSimilarity(search.Vector, doc.Embedding),
		})
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*store.OfficeDocument, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	list := []*store.OfficeDocumentWithScore{}
	for _, hit := range vector.TopK(scored, limit) {
		list = append(list, &store.OfficeDocumentWithScore{Document: byID[hit.Text], Score: hit.Score})
	}
	return list, nil
}

func (d *DB) GetOfficeDocumentStats(ctx context.Context) (*store.OfficeDocumentStats, error) {
	stats := &store.OfficeDocumentStats{}
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM office_document").Scan(&stats.Count); err != nil {
		return nil, errors.Wrap(err, "failed to count office documents")
	}
	if stats.Count == 0 {
		return stats, nil
	}

	var raw string
	if err := d.db.QueryRowContext(ctx, "SELECT embedding FROM office_document ORDER BY seq ASC LIMIT 1").Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to read embedding")
	}
	var embedding []float32
	if err := json.Unmarshal([]byte(raw), &embedding); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal embedding")
	}
	stats.Dimensions = len(embedding)
	return stats, nil
}
