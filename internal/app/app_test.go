package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/pkg/config"
	"github.com/noah-isme/accommodation-tracker/pkg/database"
)

type noClipboard struct{}

func (noClipboard) WriteAll(string) error { return errors.New("no clipboard in tests") }

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type apiClient struct {
	t *testing.T
	r *gin.Engine
}

func newAPI(t *testing.T) (*apiClient, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	db, err := database.NewSQLite(filepath.Join(dir, "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, nil))

	exports := filepath.Join(dir, "exports")
	cfg := &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api/v1",
		Exports:   config.ExportsConfig{Dir: exports, ClipboardFallback: true},
		Metrics:   config.MetricsConfig{Enabled: true},
	}
	r, err := NewRouter(cfg, db, nil, Options{Clipboard: noClipboard{}})
	require.NoError(t, err)
	return &apiClient{t: t, r: r}, exports
}

func (a *apiClient) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (a *apiClient) create(path string, body interface{}) int64 {
	a.t.Helper()
	code, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, code, string(env.Data))
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.ID
}

func TestTrackerEndToEnd(t *testing.T) {
	api, exports := newAPI(t)

	classID := api.create("/classes", map[string]string{"name": "Algebra I", "subject": "Math", "period": "3", "year": "2024-2025"})
	studentID := api.create("/students", map[string]string{"first_name": "Ana", "last_name": "Diaz", "student_id": "S-100", "plan_type": "504"})
	accID := api.create(fmt.Sprintf("/students/%d/accommodations", studentID), map[string]string{"category": "Testing", "description": "Extended time"})
	api.create(fmt.Sprintf("/classes/%d/students", classID), map[string]int64{"student_id": studentID})
	periodID := api.create("/periods", map[string]string{"name": "1st Six Weeks", "start_date": "2024-09-02", "end_date": "2024-10-11", "year": "2024-2025"})

	code, env := api.do(http.MethodPost, fmt.Sprintf("/classes/%d/students", classID), map[string]int64{"student_id": studentID})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_ENROLLED", env.Error.Code)

	code, env = api.do(http.MethodPost, fmt.Sprintf("/classes/%d/service-logs/toggle", classID), map[string]interface{}{"accommodation_id": accID, "date": "2024-09-03"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"provided":true`)

	code, env = api.do(http.MethodGet, fmt.Sprintf("/classes/%d/tracking?start=2024-09-02&end=2024-09-05", classID), nil)
	require.Equal(t, http.StatusOK, code)
	var tracking []struct {
		StudentID      string `json:"student_id"`
		Accommodations []struct {
			ServiceLogs map[string]bool `json:"service_logs"`
		} `json:"accommodations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tracking))
	require.Len(t, tracking, 1)
	assert.Equal(t, map[string]bool{"2024-09-03": true}, tracking[0].Accommodations[0].ServiceLogs)

	code, env = api.do(http.MethodGet, fmt.Sprintf("/classes/%d/week?period_id=%d&week_start=2024-09-16", classID, periodID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"label":"Week 3 of 1st Six Weeks"`)

	code, env = api.do(http.MethodGet, fmt.Sprintf("/classes/%d/export/csv?start=2024-09-02&end=2024-09-05", classID), nil)
	require.Equal(t, http.StatusOK, code)
	var csvResult struct {
		Destination string `json:"destination"`
		Path        string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &csvResult))
	assert.Equal(t, "file", csvResult.Destination)
	content, err := os.ReadFile(csvResult.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "S-100,Diaz,Ana,504,Testing,Extended time,,✓,,")

	code, env = api.do(http.MethodPost, fmt.Sprintf("/classes/%d/export/pdf?period_id=%d", classID, periodID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"success_count":1`)
	pdf, err := os.ReadFile(filepath.Join(exports, "Algebra_I_1st_Six_Weeks_Reports", "Diaz_Ana_1st_Six_Weeks.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestTrackerNotFoundSemantics(t *testing.T) {
	api, _ := newAPI(t)

	code, env := api.do(http.MethodGet, "/classes/404", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))

	code, _ = api.do(http.MethodDelete, "/students/404", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, env = api.do(http.MethodGet, "/classes/404/tracking?start=2024-09-02&end=2024-09-05", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, env = api.do(http.MethodPost, "/periods", map[string]string{"name": "Bad", "start_date": "2024-10-11", "end_date": "2024-09-02", "year": "2024-2025"})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PERIOD_RANGE", env.Error.Code)
}

func TestTrackerDuplicateStudentID(t *testing.T) {
	api, _ := newAPI(t)
	api.create("/students", map[string]string{"first_name": "Ana", "last_name": "Diaz", "student_id": "S-1", "plan_type": "IEP"})

	code, env := api.do(http.MethodPost, "/students", map[string]string{"first_name": "Ben", "last_name": "Lee", "student_id": "S-1", "plan_type": "504"})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestOpsEndpoints(t *testing.T) {
	api, _ := newAPI(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		api.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
