package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/internal/roadmap"
	"github.com/founderdash/dashboard/internal/roadmap/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		api.SetIdentity(c, models.Identity{ID: "u1"})
		c.Next()
	})
	RegisterRoutes(r, service.NewService(collection.NewMemory[roadmap.Milestone]()))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type mutation struct {
	Record  roadmap.Milestone `json:"record"`
	Summary roadmap.Summary   `json:"summary"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) mutation {
	t.Helper()
	var m mutation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestMilestoneFlow(t *testing.T) {
	r := router()

	w := do(r, http.MethodPost, "/api/roadmap/milestones", `{"title":"Beta","description":"Private beta","dueDate":"2026-12-01","priority":"High"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m := decode(t, w)
	assert.Equal(t, roadmap.NotStarted, m.Record.Status)
	id := m.Record.ID

	m = decode(t, do(r, http.MethodPost, "/api/roadmap/milestones/"+id+"/start", ""))
	assert.Equal(t, roadmap.InProgress, m.Record.Status)
	assert.Equal(t, 10, m.Record.Progress)

	m = decode(t, do(r, http.MethodPost, "/api/roadmap/milestones/"+id+"/hold", ""))
	assert.Equal(t, roadmap.OnHold, m.Record.Status)

	w = do(r, http.MethodGet, "/api/roadmap/milestones/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got roadmap.Milestone
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, roadmap.OnHold, got.Status)

	w = do(r, http.MethodPut, "/api/roadmap/milestones/"+id+"/progress", `{"progress":100}`)
	require.Equal(t, http.StatusOK, w.Code)
	m = decode(t, w)
	assert.Equal(t, roadmap.Completed, m.Record.Status)
	assert.Equal(t, 100, m.Summary.CompletionRate)

	w = do(r, http.MethodPost, "/api/roadmap/milestones/"+id+"/resume", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/roadmap/milestones/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/roadmap/milestones/"+id+"/hold", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressValidation(t *testing.T) {
	r := router()
	m := decode(t, do(r, http.MethodPost, "/api/roadmap/milestones", `{"title":"T","description":"D","dueDate":"2026-12-01"}`))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/roadmap/milestones/"+m.Record.ID+"/progress", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/roadmap/milestones/"+m.Record.ID+"/progress", `{"progress":150}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/roadmap/milestones", `{"title":"T","description":"D"}`).Code)
}

func TestSummaryEndpoint(t *testing.T) {
	r := router()
	w := do(r, http.MethodGet, "/api/roadmap/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum roadmap.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 0, sum.CompletionRate)
	assert.Positive(t, sum.DaysRemaining)
}
