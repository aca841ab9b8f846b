package get_service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-QueueService/internal/service/catalog"
	"github.com/m04kA/SMC-QueueService/internal/service/catalog/models"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type stubCatalog struct{}

func (stubCatalog) GetByID(_ context.Context, id int64) (*models.ServiceResponse, error) {
	switch id {
	case 3:
		return &models.ServiceResponse{ID: 3, Name: "Стрижка", DurationMinutes: 30}, nil
	case 4:
		return nil, errors.New("db down")
	default:
		return nil, catalog.ErrServiceNotFound
	}
}

func TestHandle(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}", NewHandler(stubCatalog{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"name":"Стрижка","durationMinutes":30,"price":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/4", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
