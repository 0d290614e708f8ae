package get_business_catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

type fakeCatalog struct {
	services  []*domain.Service
	employees []*domain.Employee
	err       error
	lastID    int64
}

func (f *fakeCatalog) ListServicesByBusiness(_ context.Context, businessID int64) ([]*domain.Service, error) {
	f.lastID = businessID
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeCatalog) ListEmployeesByBusiness(_ context.Context, businessID int64) ([]*domain.Employee, error) {
	f.lastID = businessID
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func TestHandleServices(t *testing.T) {
	t.Run("список услуг", func(t *testing.T) {
		catalog := &fakeCatalog{
			services: []*domain.Service{
				{ID: 5, BusinessID: 1, Name: "Стрижка", DurationMinutes: 60, Price: 1500},
				{ID: 6, BusinessID: 1, Name: "Укладка", DurationMinutes: 30, Price: 800},
			},
		}
		handler := NewHandler(catalog, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/services", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": "1"})
		rec := httptest.NewRecorder()

		handler.HandleServices(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(1), catalog.lastID)

		var resp ServiceListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Services, 2)
		assert.Equal(t, "Стрижка", resp.Services[0].Name)
		assert.Equal(t, 60, resp.Services[0].DurationMinutes)
	})

	t.Run("пустой каталог отдает пустой список, не null", func(t *testing.T) {
		handler := NewHandler(&fakeCatalog{}, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/services", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": "1"})
		rec := httptest.NewRecorder()

		handler.HandleServices(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"services":[]`)
	})

	t.Run("некорректный businessId", func(t *testing.T) {
		handler := NewHandler(&fakeCatalog{}, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/abc/services", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": "abc"})
		rec := httptest.NewRecorder()

		handler.HandleServices(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ошибка репозитория", func(t *testing.T) {
		handler := NewHandler(&fakeCatalog{err: errors.New("db down")}, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/services", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": "1"})
		rec := httptest.NewRecorder()

		handler.HandleServices(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleEmployees(t *testing.T) {
	t.Run("список сотрудников", func(t *testing.T) {
		email := "anna@example.com"
		catalog := &fakeCatalog{
			employees: []*domain.Employee{
				{ID: 3, BusinessID: 1, Name: "Анна", Role: "мастер", Email: &email},
			},
		}
		handler := NewHandler(catalog, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/employees", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": "1"})
		rec := httptest.NewRecorder()

		handler.HandleEmployees(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp EmployeeListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Employees, 1)
		assert.Equal(t, "Анна", resp.Employees[0].Name)
		require.NotNil(t, resp.Employees[0].Email)
		assert.Equal(t, email, *resp.Employees[0].Email)
	})

	t.Run("некорректный businessId", func(t *testing.T) {
		handler := NewHandler(&fakeCatalog{}, &noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses//employees", nil)
		req = mux.SetURLVars(req, map[string]string{"businessId": ""})
		rec := httptest.NewRecorder()

		handler.HandleEmployees(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
