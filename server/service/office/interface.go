// Package office answers "can I call this office now?" questions and ingests
// the office work rules those answers are based on.
//
// A query flows through region resolution, retrieval of rule documents, a
// current-time lookup, a deterministic availability decision and finally an
// LLM narration. The narration explains the decision; it never makes it.
package office

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/officehours/plugin/ai/aitime"
	"github.com/hrygo/officehours/plugin/ai/availability"
	"github.com/hrygo/officehours/plugin/ai/vector"
)

// OfficeService is the surface used by the HTTP API and the CLI.
type OfficeService interface {
	Answer(ctx context.Context, query string) (*Answer, error)
	Ingest(ctx context.Context, items []KnowledgeItem) (int, error)
	Stats(ctx context.Context) (*vector.Stats, error)
}

// Answer is the result of one query.
type Answer struct {
	AIMessage string                `json:"ai_message"`
	Decision  availability.Decision `json:"-"`
	// TimeInfo is nil when no region was named or the time lookup failed.
	TimeInfo *aitime.TimeInfo `json:"-"`
}

// KnowledgeItem is one office rule record to ingest.
type KnowledgeItem struct {
	OfficeName  string `json:"office_name" yaml:"office_name"`
	Timezone    string `json:"timezone" yaml:"timezone"`
	Country     string `json:"country" yaml:"country"`
	Description string `json:"description" yaml:"description"`
}

// Validate checks that every field is present.
func (k KnowledgeItem) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"office_name", k.OfficeName},
		{"timezone", k.Timezone},
		{"country", k.Country},
		{"description", k.Description},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.Errorf("%s is required", f.name)
		}
	}
	return nil
}

// Document renders the stored body of the item.
func (k KnowledgeItem) Document() string {
	return k.OfficeName + "의 근무 규정:\n" + k.Description
}

// Metadata returns the store metadata of the item.
func (k KnowledgeItem) Metadata() vector.DocumentMetadata {
	return vector.DocumentMetadata{
		OfficeName: k.OfficeName,
		Timezone:   k.Timezone,
		Country:    k.Country,
	}
}
