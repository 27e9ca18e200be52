package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gearshare/backend/internal/api/handlers"
	"github.com/gearshare/backend/internal/domain/entities"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, name, email string) (*entities.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, name, email string) (*entities.User, error) {
	args := m.Called(ctx, id, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("creates a user", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		user := &entities.User{ID: 1, Name: "Ann", Email: "ann@example.com"}
		service.On("Create", mock.Anything, "Ann", "ann@example.com").Return(user, nil)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"Ann","email":"ann@example.com"}`)))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		service.On("Create", mock.Anything, "Ann", "ann@example.com").
			Return(nil, apperrors.NewConflictError("email ann@example.com is already in use"))

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"Ann","email":"ann@example.com"}`)))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{`)))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_GetByID(t *testing.T) {
	t.Run("unknown user maps to 404", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		service.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.NewNotFoundError("user not found"))

		req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
		req.SetPathValue("userId", "99")
		rec := httptest.NewRecorder()

		handler.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		req.SetPathValue("userId", "abc")
		rec := httptest.NewRecorder()

		handler.GetByID(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("responds with no content", func(t *testing.T) {
		service := new(MockUserService)
		handler := handlers.NewUserHandler(service)

		service.On("Delete", mock.Anything, int64(1)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
		req.SetPathValue("userId", "1")
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		service.AssertExpectations(t)
	})
}
