// Package web provides HTTP request and response types for the comparison
// and risk-assessment API.
package web

import "github.com/flowvault/flowvault/pkg/models"

// CompareVersionsRequest compares two stored versions of a workflow.
type CompareVersionsRequest struct {
	VersionA string `json:"versionA" validate:"required"`
	VersionB string `json:"versionB" validate:"required"`
}

// CompareDocumentsRequest compares two inline documents, for callers that
// hold the raw snapshots themselves.
type CompareDocumentsRequest struct {
	DocumentA models.WorkflowDocument `json:"documentA" validate:"required"`
	DocumentB models.WorkflowDocument `json:"documentB" validate:"required"`
}

// AssessRequest assesses one inline workflow document.
type AssessRequest struct {
	Document models.WorkflowDocument `json:"document" validate:"required"`
}

// ProjectRequest renders one inline document into its step sequence.
type ProjectRequest struct {
	Document   models.WorkflowDocument `json:"document"`
	VersionTag string                  `json:"versionTag"`
}

// ProjectResponse is the rendered step sequence for one document.
type ProjectResponse struct {
	Steps    []models.Step `json:"steps"`
	Warnings []string      `json:"warnings,omitempty"`
}
