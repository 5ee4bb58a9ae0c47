package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm/internal/handlers"
	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"
)

// setupApp wires a full Fiber app over a per-test in-memory SQLite
// database. The RabbitMQ client is nil so event publishing is skipped.
func setupApp(t *testing.T, authRequired bool) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Product{}, &models.Order{}, &models.User{},
	))

	logger := zap.NewNop()

	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo, nil, logger, 10, 10)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, nil, logger)
	reportService := services.NewReportService(customerRepo, orderRepo)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	customerHandler := handlers.NewCustomerHandler(customerService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)
	reportHandler := handlers.NewReportHandler(reportService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	queries := apiV1
	mutations := apiV1
	if authRequired {
		mutations = apiV1.Group("", middleware.AuthRequired(authService, logger))
	}

	customerHandler.RegisterRoutes(queries, mutations)
	productHandler.RegisterRoutes(queries, mutations)
	orderHandler.RegisterRoutes(queries, mutations)
	reportHandler.RegisterRoutes(queries)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func getList(t *testing.T, app *fiber.App, path string) []map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func createCustomer(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": name, "email": email}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["customer"].(map[string]interface{})["id"].(string)
}

func createProduct(t *testing.T, app *fiber.App, name string, price float64, stock int) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createProduct",
		fiber.Map{"name": name, "price": price, "stock": stock}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["product"].(map[string]interface{})["id"].(string)
}

func TestCreateCustomerEndpoint(t *testing.T) {
	app := setupApp(t, false)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": "Alice", "email": "alice@example.com", "phone": "+1-555-0100"}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Customer created successfully!", body["message"])

	customers := getList(t, app, "/api/v1/customers")
	require.Len(t, customers, 1)
	assert.Equal(t, "Alice", customers[0]["name"])
	assert.Equal(t, "alice@example.com", customers[0]["email"])
	assert.Equal(t, "+1-555-0100", customers[0]["phone"])

	// Duplicate email is a conflict and writes nothing.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": "Clone", "email": "alice@example.com"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["message"])
	assert.Len(t, getList(t, app, "/api/v1/customers"), 1)

	// Malformed phone is rejected before any write.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": "Bob", "email": "bob@example.com", "phone": "not-a-phone"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid phone format", body["message"])
	assert.Len(t, getList(t, app, "/api/v1/customers"), 1)
}

func TestBulkCreateCustomersEndpoint(t *testing.T) {
	app := setupApp(t, false)
	createCustomer(t, app, "Existing", "dup@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/bulkCreateCustomers", fiber.Map{
		"customers": []fiber.Map{
			{"name": "First", "email": "first@example.com"},
			{"name": "Second", "email": "dup@example.com"},
			{"name": "Third", "email": "third@example.com"},
		},
	}, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["customers"], 2)
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "dup@example.com")
}

func TestCreateProductEndpoint(t *testing.T) {
	app := setupApp(t, false)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createProduct",
		fiber.Map{"name": "Laptop", "price": 1200.00, "stock": 4}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, 1200.00, product["price"])
	assert.Equal(t, 4.0, product["stock"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createProduct",
		fiber.Map{"name": "Free", "price": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Price must be positive", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createProduct",
		fiber.Map{"name": "Negative", "price": 5.0, "stock": -1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Stock cannot be negative", body["message"])

	// Only the valid product was written.
	assert.Len(t, getList(t, app, "/api/v1/products"), 1)
}

func TestCreateOrderEndpoint(t *testing.T) {
	app := setupApp(t, false)

	customerID := createCustomer(t, app, "Alice", "alice@example.com")
	laptopID := createProduct(t, app, "Laptop", 1200.00, 5)
	mouseID := createProduct(t, app, "Mouse", 25.50, 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createOrder", fiber.Map{
		"customerId": customerID,
		"productIds": []string{laptopID, mouseID},
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, 1225.50, order["totalAmount"])
	assert.Equal(t, "alice@example.com", order["customer"].(map[string]interface{})["email"])
	assert.Len(t, order["products"], 2)
}

func TestCreateOrderEndpoint_Failures(t *testing.T) {
	app := setupApp(t, false)

	customerID := createCustomer(t, app, "Alice", "alice@example.com")
	laptopID := createProduct(t, app, "Laptop", 1200.00, 5)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/createOrder", fiber.Map{
		"customerId": "ghost",
		"productIds": []string{laptopID},
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invalid customer ID", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createOrder", fiber.Map{
		"customerId": customerID,
		"productIds": []string{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "At least one product must be selected", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/createOrder", fiber.Map{
		"customerId": customerID,
		"productIds": []string{laptopID, "ghost"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "One or more product IDs are invalid", body["message"])

	// None of the failures left an order behind.
	assert.Empty(t, getList(t, app, "/api/v1/orders"))
}

func TestUpdateLowStockProductsEndpoint(t *testing.T) {
	app := setupApp(t, false)

	for i, stock := range []int{3, 15, 7, 10} {
		createProduct(t, app, fmt.Sprintf("p%d", i), 10.0, stock)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/updateLowStockProducts", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Successfully restocked 2 low-stock product(s).", body["message"])
	assert.Len(t, body["updatedProducts"], 2)

	products := getList(t, app, "/api/v1/allProducts?orderBy=stock")
	require.Len(t, products, 4)
	stocks := make([]float64, 0, 4)
	for _, p := range products {
		stocks = append(stocks, p["stock"].(float64))
	}
	assert.Equal(t, []float64{10, 13, 15, 17}, stocks)
}

func TestUpdateLowStockProductsEndpoint_NoneFound(t *testing.T) {
	app := setupApp(t, false)
	createProduct(t, app, "full", 10.0, 99)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/updateLowStockProducts", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No low-stock products found to update.", body["message"])
	assert.Empty(t, body["updatedProducts"])
}

func TestAggregateEndpoints(t *testing.T) {
	app := setupApp(t, false)

	// With no orders the revenue aggregate is 0, not an error.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/totalRevenue", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, body["totalRevenue"])

	customerID := createCustomer(t, app, "Alice", "alice@example.com")
	productID := createProduct(t, app, "Laptop", 100.25, 5)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/createOrder", fiber.Map{
		"customerId": customerID,
		"productIds": []string{productID},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/totalCustomers", nil, nil)
	assert.Equal(t, 1.0, body["totalCustomers"])
	_, body = doJSON(t, app, http.MethodGet, "/api/v1/totalOrders", nil, nil)
	assert.Equal(t, 1.0, body["totalOrders"])
	_, body = doJSON(t, app, http.MethodGet, "/api/v1/totalRevenue", nil, nil)
	assert.Equal(t, 100.25, body["totalRevenue"])
}

func TestFilteredCustomerListing(t *testing.T) {
	app := setupApp(t, false)

	createCustomer(t, app, "Alice", "alice@example.com")
	createCustomer(t, app, "Bob", "bob@other.org")
	createCustomer(t, app, "Alicia", "alicia@example.com")

	customers := getList(t, app, "/api/v1/allCustomers?nameContains=Ali&orderBy=-name")
	require.Len(t, customers, 2)
	assert.Equal(t, "Alicia", customers[0]["name"])
	assert.Equal(t, "Alice", customers[1]["name"])

	customers = getList(t, app, "/api/v1/allCustomers?emailContains=other.org")
	require.Len(t, customers, 1)
	assert.Equal(t, "Bob", customers[0]["name"])
}

func TestMutationAuthGuard(t *testing.T) {
	app := setupApp(t, true)

	// Mutations are guarded when auth is required.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": "Alice", "email": "alice@example.com"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Queries stay open for the scheduled jobs.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/totalCustomers", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Register, log in, and retry the mutation with the token.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register",
		fiber.Map{"username": "operator", "email": "op@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login",
		fiber.Map{"username": "operator", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/createCustomer",
		fiber.Map{"name": "Alice", "email": "alice@example.com"},
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
