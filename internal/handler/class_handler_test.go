package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/service"
)

type classServiceMock struct {
	getResp   *models.Class
	created   service.ClassRequest
	deletedID int64
}

func (m *classServiceMock) List(ctx context.Context) ([]models.Class, error) {
	return []models.Class{}, nil
}

func (m *classServiceMock) Get(ctx context.Context, id int64) (*models.Class, error) {
	return m.getResp, nil
}

func (m *classServiceMock) Create(ctx context.Context, req service.ClassRequest) (*models.Class, error) {
	m.created = req
	return &models.Class{ID: 1, Name: req.Name}, nil
}

func (m *classServiceMock) Update(ctx context.Context, id int64, req service.ClassRequest) (*models.Class, error) {
	return nil, nil
}

func (m *classServiceMock) Delete(ctx context.Context, id int64) error {
	m.deletedID = id
	return nil
}

func (m *classServiceMock) Summary(ctx context.Context, id int64) (*models.ClassSummary, error) {
	return nil, nil
}

func TestClassHandlerGetMissingReturnsNullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewClassHandler(&classServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/classes/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	h.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())
}

func TestClassHandlerCreateAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{}
	h := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(`{"name":"Biology","period":"2"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Biology", mockSvc.created.Name)
	assert.Equal(t, "2", mockSvc.created.Period)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/classes/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, int64(5), mockSvc.deletedID)
}
