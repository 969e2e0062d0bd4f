package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/services"
	storefile "github.com/flowvault/flowvault/pkg/versionstore/file"
	"github.com/flowvault/flowvault/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *storefile.Store) {
	t.Helper()

	store := storefile.NewStore(t.TempDir())
	comparisonService := services.NewComparison(store)
	assessmentService := services.NewAssessment(nil)
	validate := validator.New(validator.WithRequiredStructEnabled())

	handlers := web.NewAPIHandlers(comparisonService, assessmentService, validate)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Post("/:id/compare", handlers.CompareVersions)
	w.Post("/compare", handlers.CompareDocuments)
	w.Post("/assess", handlers.AssessWorkflow)
	w.Post("/project", handlers.ProjectWorkflow)

	app.Get("/health", handlers.HealthCheck)

	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, responseBody
}

func TestCompareVersions(t *testing.T) {
	app, store := setupTestApp(t)

	docA := models.WorkflowDocument{"name": "X", "actions": []any{
		map[string]any{"id": "1", "type": "DELAY", "delayMillis": float64(60000)},
	}}
	docB := models.WorkflowDocument{"name": "X", "actions": []any{
		map[string]any{"id": "1", "type": "DELAY", "delayMillis": float64(120000)},
	}}

	require.NoError(t, store.SaveVersion(t.Context(), "wf-1", "1", docA))
	require.NoError(t, store.SaveVersion(t.Context(), "wf-1", "2", docB))

	resp, body := postJSON(t, app, "/workflows/wf-1/compare", web.CompareVersionsRequest{
		VersionA: "1", VersionB: "2",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result services.ComparisonResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "wf-1", result.WorkflowID)
	assert.Len(t, result.Differences.Modified, 1)
	assert.False(t, result.NoChanges)
}

func TestCompareVersions_MissingVersion(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.SaveVersion(t.Context(), "wf-1", "1", models.WorkflowDocument{"name": "X"}))

	resp, _ := postJSON(t, app, "/workflows/wf-1/compare", web.CompareVersionsRequest{
		VersionA: "1", VersionB: "9",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompareVersions_ValidationFailure(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := postJSON(t, app, "/workflows/wf-1/compare", web.CompareVersionsRequest{VersionA: "1"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompareDocuments_Inline(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := postJSON(t, app, "/workflows/compare", web.CompareDocumentsRequest{
		DocumentA: models.WorkflowDocument{"name": "X"},
		DocumentB: models.WorkflowDocument{"name": "Y"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result services.ComparisonResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Len(t, result.Differences.Modified, 1)
}

func TestAssessWorkflow(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := postJSON(t, app, "/workflows/assess", web.AssessRequest{
		Document: models.WorkflowDocument{
			"name":    "X",
			"actions": []any{map[string]any{"type": "EMAIL", "subject": "Hi"}},
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result services.AssessmentResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Len(t, result.Assessment.SafetyChecks, 6)
	assert.NotEmpty(t, result.Assessment.RiskLevel)
}

func TestAssessWorkflow_MissingDocument(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := postJSON(t, app, "/workflows/assess", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectWorkflow(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := postJSON(t, app, "/workflows/project", web.ProjectRequest{
		Document: models.WorkflowDocument{"actions": []any{
			map[string]any{"type": "DELAY", "delayMillis": float64(3600000)},
		}},
		VersionTag: "v3",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.ProjectResponse
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "Wait 1 hour", result.Steps[0].Title)
	assert.Equal(t, "v3", result.Steps[0].VersionTag)
}

func TestProjectWorkflow_MalformedDocumentWarns(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := postJSON(t, app, "/workflows/project", web.ProjectRequest{
		Document: models.WorkflowDocument{"actions": "not-a-list"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.ProjectResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.NotEmpty(t, result.Steps)
	assert.NotEmpty(t, result.Warnings)
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
