// Package file provides a file-based version store: one JSON document per
// workflow version under <root>/versions/<workflowID>/<version>.json. It
// backs the CLI and tests; production deployments plug in their own store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/versionstore"
)

// Store implements versionstore.VersionStore on the local file system.
type Store struct {
	root string
}

// NewStore creates a file-based version store rooted at the given directory.
// A file:// prefix is tolerated for URL-style configuration.
func NewStore(root string) *Store {
	return &Store{root: strings.TrimPrefix(root, "file://")}
}

func (s *Store) versionPath(workflowID, version string) string {
	return filepath.Join(s.root, "versions", workflowID, version+".json")
}

// GetVersion loads one stored version document.
func (s *Store) GetVersion(_ context.Context, workflowID, version string) (models.WorkflowDocument, error) {
	data, err := os.ReadFile(s.versionPath(workflowID, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, versionstore.ErrVersionNotFound
		}

		return nil, fmt.Errorf("failed to read version %s of workflow %s: %w", version, workflowID, err)
	}

	var doc models.WorkflowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode version %s of workflow %s: %w", version, workflowID, err)
	}

	return doc, nil
}

// SaveVersion writes one version document, creating directories as needed.
func (s *Store) SaveVersion(_ context.Context, workflowID, version string, doc models.WorkflowDocument) error {
	path := s.versionPath(workflowID, version)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create version directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version %s of workflow %s: %w", version, workflowID, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write version %s of workflow %s: %w", version, workflowID, err)
	}

	return nil
}

// ListVersions returns the stored version tags for a workflow, sorted.
func (s *Store) ListVersions(_ context.Context, workflowID string) ([]string, error) {
	root := os.DirFS(filepath.Join(s.root, "versions", workflowID))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of workflow %s: %w", workflowID, err)
	}

	versions := make([]string, 0, len(jsonFiles))
	for _, file := range jsonFiles {
		versions = append(versions, strings.TrimSuffix(file, ".json"))
	}

	sort.Strings(versions)

	return versions, nil
}
