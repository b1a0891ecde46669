package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gemshop/internal/handlers"
	"gemshop/internal/middleware"
	"gemshop/internal/models"
	"gemshop/internal/repositories"
	"gemshop/internal/services"
	"gemshop/internal/storage"
)

var dbCounter int64

// setupApp wires the full HTTP surface over an in-memory SQLite database,
// mirroring the production wiring with the broker disabled.
func setupApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()

	// Each test gets its own named shared-cache database so parallel
	// connections in the pool see the same data.
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Gemstone{},
		&models.Material{},
		&models.Attribute{},
		&models.AttributeValue{},
		&models.GoldRate{},
		&models.Order{},
		&models.OrderItem{},
		&models.Slip{},
		&models.Cart{},
		&models.CartItem{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	gemstoneRepo := repositories.NewGORMGemstoneRepository(db)
	materialRepo := repositories.NewGORMMaterialRepository(db)
	attributeRepo := repositories.NewGORMAttributeRepository(db)
	goldRateRepo := repositories.NewGORMGoldRateRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	slipRepo := repositories.NewGORMSlipRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	files := storage.NewMockFileStorage()

	pricingService := services.NewPricingService(productRepo, goldRateRepo)
	productService := services.NewProductService(productRepo, categoryRepo, pricingService)
	categoryService := services.NewCategoryService(categoryRepo)
	gemstoneService := services.NewGemstoneService(gemstoneRepo)
	catalogService := services.NewCatalogService(materialRepo, attributeRepo)
	goldRateService := services.NewGoldRateService(goldRateRepo)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	orderService := services.NewOrderService(orderRepo, productRepo, slipRepo, pricingService, files, nil, false)
	cartService := services.NewCartService(cartRepo, productRepo, orderService)

	if err := authService.EnsureAdmin("admin", "admin@example.com", "admin123"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	gemstoneHandler := handlers.NewGemstoneHandler(gemstoneService)
	referenceHandler := handlers.NewReferenceHandler(catalogService)
	goldRateHandler := handlers.NewGoldRateHandler(goldRateService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartService)

	app := fiber.New()

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	gemstoneHandler.RegisterRoutes(api)
	referenceHandler.RegisterRoutes(api)
	goldRateHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)

	admin := app.Group("/admin", middleware.AuthRequired(authService), middleware.AdminOnly())
	authHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	gemstoneHandler.RegisterAdminRoutes(admin)
	referenceHandler.RegisterAdminRoutes(admin)
	goldRateHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	return app, authService
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func adminLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func createProduct(t *testing.T, app *fiber.App, token string, body map[string]interface{}) models.Product {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/admin/products", token, body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.NotZero(t, product.ProductID)
	return product
}

func TestAdminGuard(t *testing.T) {
	app, authService := setupApp(t)

	// No token.
	resp := doJSON(t, app, http.MethodGet, "/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A staff token is authenticated but not authorized.
	err := authService.RegisterUser(&models.User{
		Username: "clerk",
		Email:    "clerk@example.com",
		Password: "clerkpass",
		Role:     models.RoleStaff,
	})
	assert.NoError(t, err)
	staffToken, err := authService.LoginUser("clerk", "clerkpass")
	assert.NoError(t, err)

	resp = doJSON(t, app, http.MethodGet, "/admin/orders", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The admin token passes.
	resp = doJSON(t, app, http.MethodGet, "/admin/orders", adminLogin(t, app), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalogEndpoints(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	product := createProduct(t, app, token, map[string]interface{}{
		"product_name":      "Gold Pendant",
		"sku":               "GP-001",
		"base_price":        "1000.00",
		"markup_percentage": "10",
		"stock_quantity":    5,
		"is_active":         true,
		"is_gold":           true,
		"gold_weight_grams": "2.5",
	})

	// Public list sees the product without auth.
	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	// The computed price needs a recorded gold rate.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/price", product.ProductID), "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/admin/gold-rates", token, map[string]interface{}{
		"rate_per_gram": "200.00",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/price", product.ProductID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var priceResp map[string]string
	decodeBody(t, resp, &priceResp)
	price, err := decimal.NewFromString(priceResp["price"])
	assert.NoError(t, err)
	// 1000 + 100 markup + 500 gold surcharge
	assert.True(t, price.Equal(decimal.RequireFromString("1600")), "got %s", price)

	// Price filters.
	resp = doJSON(t, app, http.MethodGet, "/api/products?min_price=2000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &products)
	assert.Empty(t, products)

	// Deletion.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ProductID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ProductID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	product := createProduct(t, app, token, map[string]interface{}{
		"product_name":   "Silver Ring",
		"sku":            "SR-001",
		"base_price":     "150.00",
		"stock_quantity": 5,
		"is_active":      true,
	})

	// Place an order for 3 of 5.
	resp := doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
		"items": []map[string]interface{}{
			{"product_id": product.ProductID, "quantity": 3},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("450")))

	// Stock was reserved.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ProductID), "", nil)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, 2, fetched.StockQuantity)

	// Overselling is a conflict and leaves stock alone.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
		"items": []map[string]interface{}{
			{"product_id": product.ProductID, "quantity": 10},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Upload a payment slip.
	resp = uploadSlip(t, app, order.OrderID, "slip.png", "image/png")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.OrderID), "", nil)
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusProcessing, order.OrderStatus)

	// Verify the payment; the slip is marked verified as a side effect.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", order.OrderID), token, map[string]string{
		"order_status":   "verified",
		"payment_status": "verified",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &order)
	assert.Equal(t, models.PaymentStatusVerified, order.PaymentStatus)
	assert.NotNil(t, order.Slip)
	assert.True(t, order.Slip.Verified)

	// An unknown status is rejected up front.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", order.OrderID), token, map[string]string{
		"order_status": "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A verified order cannot be cancelled.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.OrderID), "", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderCancellationRestock(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	product := createProduct(t, app, token, map[string]interface{}{
		"product_name":   "Silver Ring",
		"sku":            "SR-002",
		"base_price":     "150.00",
		"stock_quantity": 5,
		"is_active":      true,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
		"items": []map[string]interface{}{
			{"product_id": product.ProductID, "quantity": 4},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.OrderID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusCancelled, order.OrderStatus)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ProductID), "", nil)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, 5, fetched.StockQuantity)
}

func TestSlipDeleteRevertsOrder(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	product := createProduct(t, app, token, map[string]interface{}{
		"product_name":   "Silver Ring",
		"sku":            "SR-003",
		"base_price":     "150.00",
		"stock_quantity": 5,
		"is_active":      true,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
		"items": []map[string]interface{}{
			{"product_id": product.ProductID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	// A text file is not an acceptable slip.
	resp = uploadSlip(t, app, order.OrderID, "slip.txt", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()

	resp = uploadSlip(t, app, order.OrderID, "slip.png", "image/png")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/orders/%d/slip", order.OrderID), nil)
	delResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.OrderID), "", nil)
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d/slip", order.OrderID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCartCheckout(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	product := createProduct(t, app, token, map[string]interface{}{
		"product_name":   "Silver Ring",
		"sku":            "SR-004",
		"base_price":     "150.00",
		"stock_quantity": 5,
		"is_active":      true,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items?customer_id=7", "", map[string]interface{}{
		"product_id": product.ProductID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var view services.CartView
	decodeBody(t, resp, &view)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("300")))

	resp = doJSON(t, app, http.MethodPost, "/api/cart/checkout?customer_id=7", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("300")))

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ProductID), "", nil)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, 3, fetched.StockQuantity)

	// Checking out the now-empty cart fails.
	resp = doJSON(t, app, http.MethodPost, "/api/cart/checkout?customer_id=7", "", map[string]interface{}{
		"customer_name":    "Priya Sharma",
		"customer_email":   "priya@example.com",
		"customer_address": "12 Temple Road, Colombo",
		"telephone_number": "0771234567",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGemstoneAndReferenceEndpoints(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	resp := doJSON(t, app, http.MethodGet, "/api/gemstones/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/admin/gemstones", token, map[string]interface{}{
		"name":       "Ceylon Sapphire",
		"stone_type": "sapphire",
		"carat":      "1.25",
		"quality":    "AAA",
		"base_price": "950.00",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var gemstone models.Gemstone
	decodeBody(t, resp, &gemstone)
	assert.NotZero(t, gemstone.GemstoneID)

	resp = doJSON(t, app, http.MethodGet, "/api/gemstones", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var gemstones []models.Gemstone
	decodeBody(t, resp, &gemstones)
	assert.Len(t, gemstones, 1)

	resp = doJSON(t, app, http.MethodPost, "/admin/materials", token, map[string]interface{}{
		"material_name": "22K Gold",
		"current_rate":  "19500.00",
		"unit":          "gram",
		"is_active":     true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/materials", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var materials []models.Material
	decodeBody(t, resp, &materials)
	assert.Len(t, materials, 1)
}

// uploadSlip posts a multipart slip file for an order.
func uploadSlip(t *testing.T, app *fiber.App, orderID uint, filename, contentType string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="slip"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/slip", orderID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}
