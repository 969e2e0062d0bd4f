// Package versionstore defines the contract for retrieving and storing
// snapshotted workflow versions. The engine consumes documents that are
// already decrypted and deserialized; encryption-at-rest and blob codecs are
// the storage backend's concern.
package versionstore

import (
	"context"
	"errors"

	"github.com/flowvault/flowvault/pkg/models"
)

// ErrVersionNotFound is returned when a workflow version does not exist.
var ErrVersionNotFound = errors.New("workflow version not found")

// VersionStore supplies raw workflow documents for snapshotted versions.
type VersionStore interface {
	// GetVersion returns the document stored for one workflow version, or
	// ErrVersionNotFound.
	GetVersion(ctx context.Context, workflowID, version string) (models.WorkflowDocument, error)

	// SaveVersion stores the document for one workflow version, overwriting
	// any existing snapshot for that version.
	SaveVersion(ctx context.Context, workflowID, version string, doc models.WorkflowDocument) error

	// ListVersions returns the stored version tags for a workflow in
	// lexicographic order.
	ListVersions(ctx context.Context, workflowID string) ([]string, error)
}
