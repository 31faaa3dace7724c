package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/internal/dto"
	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type trackingServiceMock struct {
	trackingResp []models.StudentTracking
	toggleResp   bool
	toggleErr    error
	weekResp     *dto.WeekView
	lastWeek     dto.WeekRequest
	lastToggle   [2]int64
	lastDate     string
}

func (m *trackingServiceMock) GetTracking(ctx context.Context, classID int64, start, end string) ([]models.StudentTracking, error) {
	return m.trackingResp, nil
}

func (m *trackingServiceMock) ToggleService(ctx context.Context, classID, accommodationID int64, date string) (bool, error) {
	m.lastToggle = [2]int64{classID, accommodationID}
	m.lastDate = date
	return m.toggleResp, m.toggleErr
}

func (m *trackingServiceMock) GetWeek(ctx context.Context, req dto.WeekRequest) (*dto.WeekView, error) {
	m.lastWeek = req
	return m.weekResp, nil
}

func trackingRouter(svc trackingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTrackingHandler(svc)
	r := gin.New()
	r.GET("/classes/:id/tracking", h.Tracking)
	r.GET("/classes/:id/week", h.Week)
	r.POST("/classes/:id/service-logs/toggle", h.Toggle)
	return r
}

func TestTrackingHandlerToggle(t *testing.T) {
	mockSvc := &trackingServiceMock{toggleResp: true}
	r := trackingRouter(mockSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/classes/7/service-logs/toggle", bytes.NewBufferString(`{"accommodation_id":3,"date":"2024-09-03"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]int64{7, 3}, mockSvc.lastToggle)
	assert.Equal(t, "2024-09-03", mockSvc.lastDate)

	var body struct {
		Data dto.ToggleServiceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Provided)
}

func TestTrackingHandlerToggleMapsErrors(t *testing.T) {
	mockSvc := &trackingServiceMock{toggleErr: appErrors.Clone(appErrors.ErrNotFound, "class not found")}
	r := trackingRouter(mockSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/classes/7/service-logs/toggle", bytes.NewBufferString(`{"accommodation_id":3,"date":"2024-09-03"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestTrackingHandlerRejectsBadInput(t *testing.T) {
	r := trackingRouter(&trackingServiceMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/classes/abc/tracking?start=2024-09-02&end=2024-09-05", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/classes/1/service-logs/toggle", bytes.NewBufferString(`{"accommodation_id":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/classes/1/week?period_id=zero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingHandlerWeekPassesQuery(t *testing.T) {
	mockSvc := &trackingServiceMock{weekResp: &dto.WeekView{WeekStart: "2024-09-09"}}
	r := trackingRouter(mockSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/classes/2/week?period_id=5&week_start=2024-09-02&direction=next", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.lastWeek.PeriodID)
	assert.Equal(t, int64(5), *mockSvc.lastWeek.PeriodID)
	assert.Equal(t, int64(2), mockSvc.lastWeek.ClassID)
	assert.Equal(t, "2024-09-02", mockSvc.lastWeek.WeekStart)
	assert.Equal(t, "next", mockSvc.lastWeek.Direction)
}

func TestTrackingHandlerEmptyTrackingIsList(t *testing.T) {
	r := trackingRouter(&trackingServiceMock{trackingResp: []models.StudentTracking{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/classes/9/tracking?start=2024-09-02&end=2024-09-05", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}
