package store

// OfficeDocument is a stored office rule document with its embedding.
type OfficeDocument struct {
	ID         string
	Content    string
	OfficeName string
	Timezone   string
	Country    string
	Embedding  []float32
	CreatedTs  int64
}

// SearchOfficeDocument is the similarity search request.
type SearchOfficeDocument struct {
	Vector []float32
	Limit  int
}

// OfficeDocumentWithScore is a search hit. Score is cosine similarity.
type OfficeDocumentWithScore struct {
	Document *OfficeDocument
	Score    float32
}

// OfficeDocumentStats summarizes the office_document table.
type OfficeDocumentStats struct {
	Count      int
	Dimensions int
}
