package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hrygo/officehours/server"
	"github.com/hrygo/officehours/server/service/office"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed and store office rules from a YAML or JSON file",
	Example: `  officehours ingest --file offices.yaml --driver sqlite --data ./data
  officehours ingest --file offices.json --driver postgres --dsn postgres://...`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		items, err := loadKnowledgeFile(path)
		if err != nil {
			return err
		}

		instanceProfile := loadProfile()
		setupLogger(instanceProfile)
		if instanceProfile.Driver == "memory" {
			slog.Warn("the memory driver does not persist; ingested items are lost when this command exits")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		components, err := server.NewComponents(ctx, instanceProfile)
		if err != nil {
			return err
		}
		defer components.Close()

		count, err := components.Office.Ingest(ctx, items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ingested %d item(s) into the %s store\n", count, instanceProfile.Driver)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringP("file", "f", "", "YAML or JSON list of office rules")
	_ = ingestCmd.MarkFlagRequired("file")
}

// loadKnowledgeFile reads a list of knowledge items. JSON is read through the
// YAML decoder since a JSON document is valid YAML.
func loadKnowledgeFile(path string) ([]office.KnowledgeItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var items []office.KnowledgeItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, errors.Errorf("%s: item %d: %v", path, i, err)
		}
	}
	return items, nil
}
