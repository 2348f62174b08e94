package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"miniblog/internal/config"
	handlers "miniblog/internal/handler"
	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/service"
)

func newTestHandlers() *handlers.Handlers {
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		AdminAPIKey:   "test-admin-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	return &handlers.Handlers{
		AuthService:     &MockAuthService{},
		PostService:     &MockPostService{},
		CategoryService: &MockCategoryService{},
		CommentService:  &MockCommentService{},
		UserRepo:        &MockUserRepository{},
		PostRepo:        &MockPostRepository{},
		CategoryRepo:    &MockCategoryRepository{},
		CommentRepo:     &MockCommentRepository{},
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

// withIdentity simulates a request that passed the bearer gate.
func withIdentity(r *http.Request, user *models.User) *http.Request {
	claims := &service.TokenClaims{}
	return r.WithContext(middleware.WithIdentity(r.Context(), user, claims))
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedKind string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, expectedKind, response["error"])
	assert.NotEmpty(t, response["message"])
}

func TestHomeHandler(t *testing.T) {
	handler := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.Home(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Welcome to MiniBlog", response["message"])
}
