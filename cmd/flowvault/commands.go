package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowvault/flowvault/pkg/log"
	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/normalize"
	"github.com/flowvault/flowvault/pkg/risk"
	"github.com/flowvault/flowvault/pkg/schema"
	"github.com/flowvault/flowvault/pkg/services"
	"github.com/flowvault/flowvault/pkg/steps"
	cli "github.com/urfave/cli/v3"
)

func runCompare(cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("compare requires exactly two snapshot files, got %d", cmd.Args().Len())
	}

	docA, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	docB, err := loadDocument(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	result := services.CompareDocuments(docA, docB, "A", "B")

	return printJSON(result)
}

func runAssess(cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("assess requires exactly one snapshot file, got %d", cmd.Args().Len())
	}

	doc, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	return printJSON(risk.Assess(doc))
}

func runProject(cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("project requires exactly one snapshot file, got %d", cmd.Args().Len())
	}

	doc, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	return printJSON(steps.Project(doc, cmd.String("version-tag")))
}

func runNormalize(cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("normalize requires exactly one snapshot file, got %d", cmd.Args().Len())
	}

	doc, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	fmt.Println(string(normalize.Marshal(normalize.Document(doc))))

	return nil
}

// loadDocument reads and decodes one snapshot file. Shape violations are
// logged as warnings, not failures: the engine tolerates malformed documents.
func loadDocument(path string) (models.WorkflowDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var doc models.WorkflowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	if err := schema.ValidateDocument(doc); err != nil {
		log.WithModule("cli").Warn("Snapshot has shape violations", "path", path, "error", err)
	}

	return doc, nil
}

func printJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Println(string(encoded))

	return nil
}
