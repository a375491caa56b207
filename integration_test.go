package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenbasket/produce-orders/config"
	"github.com/greenbasket/produce-orders/models"
	"github.com/greenbasket/produce-orders/router"
	"github.com/greenbasket/produce-orders/services"
	"github.com/greenbasket/produce-orders/utils"
)

// TestEndToEndOrderFlow walks the whole pipeline:
// 1. admin login -> token
// 2. admin creates catalog items
// 3. customer reads config + active items
// 4. customer submits an order
// 5. admin lists and exports orders
func TestEndToEndOrderFlow(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	cfg := setupIntegrationConfig(t)

	db, err := gorm.Open(sqlite.Open(filepath.Join(cfg.DataDir, "orders.db")), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Order{}))

	catalog := services.NewCatalogStore(cfg.ItemsPath())
	r := router.SetupRouter(cfg, db, catalog)

	// health
	w := request(t, r, "GET", "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// login
	w = request(t, r, "POST", "/api/admin/login", map[string]interface{}{
		"password": "integration-secret",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	token := decodeData(t, w)["token"].(string)

	// create items
	w = request(t, r, "POST", "/api/items", map[string]interface{}{
		"id": "tomato", "name": "Tomato", "category": "vegetable", "price": 5, "unit": "kg",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = request(t, r, "POST", "/api/items", map[string]interface{}{
		"id": "apple", "name": "Apple", "category": "fruit", "price": 8, "unit": "kg",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	// public config + storefront
	w = request(t, r, "GET", "/api/config", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, decodeData(t, w)["deliveryFee"])

	w = request(t, r, "GET", "/api/items", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// submit order
	w = request(t, r, "POST", "/api/orders", map[string]interface{}{
		"customerName": "Sara",
		"flatNumber":   "204",
		"deliveryDay":  "Friday",
		"items": []map[string]interface{}{
			{"itemId": "tomato", "price": 5, "quantity": 2},
			{"itemId": "apple", "price": 8, "quantity": 0.5},
		},
		"itemsTotal": 14,
		"grandTotal": 17,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeData(t, w)["orderId"].(string)
	assert.NotEmpty(t, orderID)

	// admin listing
	w = request(t, r, "GET", "/api/orders", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, orderID, listResp.Data[0].ID)
	assert.Equal(t, 17.0, listResp.Data[0].GrandTotal)

	// export
	w = request(t, r, "GET", "/api/orders/export", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sara")

	// admin routes stay gated
	w = request(t, r, "GET", "/api/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestGlobalRateLimitOnRoutes hammers a registered route and expects the
// process-wide per-IP limiter to cut the burst off. The limiter has to be
// installed before route registration for this to hold.
func TestGlobalRateLimitOnRoutes(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	cfg := setupIntegrationConfig(t)

	db, err := gorm.Open(sqlite.Open(filepath.Join(cfg.DataDir, "orders.db")), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Order{}))

	r := router.SetupRouter(cfg, db, services.NewCatalogStore(cfg.ItemsPath()))

	throttled := false
	for i := 0; i < 60; i++ {
		w := request(t, r, "GET", "/api/health", nil, "")
		if i < 50 {
			assert.Equal(t, http.StatusOK, w.Code, "request %d within the limit", i+1)
		} else if w.Code == http.StatusTooManyRequests {
			throttled = true
		}
	}
	assert.True(t, throttled, "burst beyond the per-IP limit must be throttled")
}

func setupIntegrationConfig(t *testing.T) *config.Config {
	t.Helper()
	password := "integration-secret"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &config.Config{
		Port:              "0",
		AdminPassword:     password,
		AdminPasswordHash: hash,
		WhatsAppPhone:     "971500000000",
		DeliveryFee:       3,
		DataDir:           t.TempDir(),
	}
}

func request(t *testing.T, r *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	assert.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}
