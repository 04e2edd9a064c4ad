package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/config"
	"github.com/example/inventory/pkg/models"
	"github.com/example/inventory/pkg/service/servicetest"
)

func newTestServer() (*Server, *servicetest.Store) {
	cfg := &config.Config{
		Server: config.ServerConfig{Name: "inventory-api", Host: "127.0.0.1", Port: 0},
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			AccessTokenExpiry: time.Hour,
		},
	}
	store := servicetest.NewStore()
	s := NewServer(cfg, zap.NewNop(), store, nil, nil)
	s.SetupRoutes()
	return s, store
}

func tokenFor(t *testing.T, s *Server, role string) string {
	t.Helper()
	token, _, err := s.issueToken(&models.User{ID: uuid.NewString(), Role: role})
	require.NoError(t, err)
	return token
}

func doJSON(s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"name":     "Dina",
		"email":    "dina@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Data struct {
			Tokens struct {
				Access struct {
					Token string `json:"token"`
				} `json:"access"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Data.Tokens.Access.Token)

	t.Run("login with the registered credentials", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email":    "dina@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email":    "dina@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	s, _ := newTestServer()

	t.Run("rejects missing token", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/category", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/category", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/category", tokenFor(t, s, models.RoleUser), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user routes need admin role", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/user", tokenFor(t, s, models.RoleUser), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(s, http.MethodGet, "/v1/user", tokenFor(t, s, models.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deletes need admin role", func(t *testing.T) {
		w := doJSON(s, http.MethodDelete, "/v1/category/some-id", tokenFor(t, s, models.RoleUser), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("audit log read needs admin role", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/audit-log/some-id", tokenFor(t, s, models.RoleUser), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// Admin passes the role gate; mongo is not wired in tests.
		w = doJSON(s, http.MethodGet, "/v1/audit-log/some-id", tokenFor(t, s, models.RoleAdmin), nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCategoryHandlers(t *testing.T) {
	s, _ := newTestServer()
	token := tokenFor(t, s, models.RoleUser)

	w := doJSON(s, http.MethodPost, "/v1/category", token, map[string]string{"name": "Electronics"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, "Create Category Success", created.Message)
	require.NotEmpty(t, created.Data.ID)

	t.Run("get", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/category/"+created.Data.ID, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/v1/category/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Category not found")
	})

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/category", token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete as admin", func(t *testing.T) {
		w := doJSON(s, http.MethodDelete, "/v1/category/"+created.Data.ID, tokenFor(t, s, models.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(s, http.MethodGet, "/v1/category/"+created.Data.ID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandlers(t *testing.T) {
	s, store := newTestServer()
	token := tokenFor(t, s, models.RoleUser)

	category := &models.Category{ID: uuid.NewString(), Name: "Electronics"}
	require.NoError(t, store.CreateCategory(context.Background(), category))

	t.Run("create coerces string numerics", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/product", token, map[string]string{
			"name":            "Mechanical Keyboard",
			"description":     "Clicky",
			"price":           "100000",
			"quantityInStock": "25",
			"categoryId":      category.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			Data models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, float64(100000), created.Data.Price)
		assert.Equal(t, 25, created.Data.QuantityInStock)
	})

	t.Run("rejects a non-numeric price", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/product", token, map[string]string{
			"name":            "Bad",
			"description":     "Bad",
			"price":           "expensive",
			"quantityInStock": "1",
			"categoryId":      category.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/product", token, map[string]string{
			"name":            "Orphan",
			"description":     "No category",
			"price":           "10",
			"quantityInStock": "1",
			"categoryId":      uuid.NewString(),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderItemHandlers(t *testing.T) {
	s, store := newTestServer()
	token := tokenFor(t, s, models.RoleUser)
	ctx := context.Background()

	product := &models.Product{ID: uuid.NewString(), Name: "Keyboard", QuantityInStock: 100, Price: 100000}
	require.NoError(t, store.CreateProduct(ctx, product))
	order := &models.Order{ID: uuid.NewString(), Date: time.Now(), CustomerName: "Budi", CustomerEmail: "budi@example.com"}
	require.NoError(t, store.CreateOrder(ctx, order))

	w := doJSON(s, http.MethodPost, "/v1/order-item", token, map[string]string{
		"orderId":   order.ID,
		"productId": product.ID,
		"quantity":  "3",
		"unitPrice": "100000",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	p, err := store.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 97, p.QuantityInStock)

	o, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300000), o.TotalPrice)

	t.Run("insufficient stock surfaces as bad request", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/v1/order-item", token, map[string]string{
			"orderId":   order.ID,
			"productId": product.ID,
			"quantity":  "1000",
			"unitPrice": "100000",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient stock")
	})
}
