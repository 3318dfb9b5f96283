package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/export"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/warehouse-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/warehouse-pos/internal/interfaces/http"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

// apiClient app completa sobre el store en memoria.
type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	log := logger.Nop()
	loc := time.UTC
	blocklist := memory.NewBlocklist()

	authUC := auth.NewAuthUseCase(repos.Users, repos.Employees, blocklist, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	_, err := authUC.CreateSuperuser(ctx, "root", "rootpass")
	require.NoError(t, err)
	sections := usecase.NewSectionService(store.Sections())
	_, err = sections.Setup(ctx)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.FiberErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  usecase.NewCategoryUseCase(store.Categories()),
		ProductUC:   usecase.NewProductUseCase(repos.Products, store.Categories()),
		WarehouseUC: usecase.NewWarehouseUseCase(repos.Warehouses),
		EmployeeUC:  usecase.NewEmployeeUseCase(store, repos.Employees),
		SectionSvc:  sections,
		ActivityUC:  usecase.NewActivityUseCase(repos.Activity),
		StockUC:     usecase.NewStockUseCase(repos.Stocks),
		IncomingUC:  inventory.NewIncomingUseCase(store, repos.Incoming, log),
		MovementUC:  inventory.NewMovementUseCase(store, repos.Movements, log),
		CheckoutUC:  sales.NewCheckoutUseCase(store, log),
		OrdersUC:    sales.NewOrdersUseCase(repos.Sales, repos.Products, repos.Stocks, infrapdf.NewReceiptGenerator(""), loc),
		ReportUC:    sales.NewReportUseCase(repos.Sales, export.NewSalesExporter(), loc),
		JWTSecret:   testJWTSecret,
		Blocklist:   blocklist,
		Location:    loc,
		Log:         log,
	})
	return &apiClient{t: t, app: app}
}

// do envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (a *apiClient) do(method, path, token string, body, out any) *http.Response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (a *apiClient) login(username, password string) string {
	a.t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	resp := a.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": username, "password": password}, &out)
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

type idResponse struct {
	ID string `json:"id"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// seedCatalog crea bodega, categoría y producto (precio 150) y devuelve sus ids.
func (a *apiClient) seedCatalog(token string) (warehouseID, productID string) {
	a.t.Helper()
	var wh, cat, prod idResponse
	resp := a.do(http.MethodPost, "/api/warehouses", token, fiber.Map{"name": "Central"}, &wh)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	resp = a.do(http.MethodPost, "/api/categories", token, fiber.Map{"name": "Bebidas"}, &cat)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	resp = a.do(http.MethodPost, "/api/products", token, fiber.Map{
		"name":           "Agua 1L",
		"category_id":    cat.ID,
		"purchase_price": "100",
		"selling_price":  "150",
	}, &prod)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	return wh.ID, prod.ID
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	api := newAPI(t)
	var body errorBody
	resp := api.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "root", "password": "nope12"}, &body)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestRouter_ValidacionDelCuerpo(t *testing.T) {
	api := newAPI(t)
	token := api.login("root", "rootpass")

	var body errorBody
	resp := api.do(http.MethodPost, "/api/warehouses", token, fiber.Map{"location": "sin nombre"}, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestRouter_VentaDescuentaStockYNumeraRecibos(t *testing.T) {
	api := newAPI(t)
	token := api.login("root", "rootpass")
	warehouseID, productID := api.seedCatalog(token)

	resp := api.do(http.MethodPost, "/api/incoming", token, fiber.Map{
		"product_id": productID, "warehouse_id": warehouseID, "quantity": 5,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var first struct {
		ID            string `json:"id"`
		ReceiptNumber int64  `json:"receipt_number"`
		Total         string `json:"total"`
		ChangeDue     string `json:"change_due"`
	}
	resp = api.do(http.MethodPost, "/api/sales", token, fiber.Map{
		"warehouse_id":   warehouseID,
		"payment_method": "cash",
		"cash_given":     "500",
		"items":          []fiber.Map{{"product_id": productID, "quantity": 2}},
	}, &first)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), first.ReceiptNumber)
	assert.Equal(t, "300", first.Total)
	assert.Equal(t, "200", first.ChangeDue)

	// La venta puede dejar stock negativo.
	var second struct {
		ReceiptNumber int64 `json:"receipt_number"`
	}
	resp = api.do(http.MethodPost, "/api/sales", token, fiber.Map{
		"warehouse_id":   warehouseID,
		"payment_method": "kaspi",
		"items":          []fiber.Map{{"product_id": productID, "quantity": 4}},
	}, &second)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(2), second.ReceiptNumber)

	var stocks struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int64  `json:"quantity"`
		} `json:"items"`
	}
	resp = api.do(http.MethodGet, "/api/stocks?warehouse_id="+warehouseID, token, nil, &stocks)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, stocks.Items, 1)
	assert.Equal(t, int64(-1), stocks.Items[0].Quantity)

	var body errorBody
	resp = api.do(http.MethodPut, "/api/sales/"+first.ID, token, fiber.Map{}, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IMMUTABLE", body.Code)

	resp = api.do(http.MethodGet, "/api/sales/"+first.ID+"/receipt", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "receipt_1.pdf")

	resp = api.do(http.MethodGet, "/api/reports/sales?export=csv", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".csv")
}

func TestRouter_CorreccionNoDejaStockNegativo(t *testing.T) {
	api := newAPI(t)
	token := api.login("root", "rootpass")
	warehouseID, productID := api.seedCatalog(token)

	var otherWH idResponse
	resp := api.do(http.MethodPost, "/api/warehouses", token, fiber.Map{"name": "Sucursal"}, &otherWH)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(http.MethodPost, "/api/incoming", token, fiber.Map{
		"product_id": productID, "warehouse_id": warehouseID, "quantity": 3,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body errorBody
	resp = api.do(http.MethodPost, "/api/movements", token, fiber.Map{
		"product_id": productID, "from_warehouse_id": warehouseID, "to_warehouse_id": otherWH.ID, "quantity": 10,
	}, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = api.do(http.MethodPost, "/api/movements", token, fiber.Map{
		"product_id": productID, "from_warehouse_id": warehouseID, "to_warehouse_id": warehouseID, "quantity": 1,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_EmpleadoLimitadoPorSecciones(t *testing.T) {
	api := newAPI(t)
	root := api.login("root", "rootpass")
	warehouseID, _ := api.seedCatalog(root)

	resp := api.do(http.MethodPost, "/api/employees", root, fiber.Map{
		"username":     "cajera",
		"password":     "secret1",
		"full_name":    "Ana Caja",
		"position":     entity.PositionCashier,
		"warehouse_id": warehouseID,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := api.login("cajera", "secret1")

	resp = api.do(http.MethodGet, "/api/pos", token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body errorBody
	resp = api.do(http.MethodGet, "/api/reports/sales", token, nil, &body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)

	var sections []struct {
		Slug string `json:"slug"`
	}
	resp = api.do(http.MethodGet, "/api/sections", root, nil, &sections)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, sections, len(entity.DefaultSections))
}

func TestRouter_LogoutRevocaElToken(t *testing.T) {
	api := newAPI(t)
	token := api.login("root", "rootpass")

	resp := api.do(http.MethodGet, "/api/warehouses", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(http.MethodPost, "/api/auth/logout", token, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var body errorBody
	resp = api.do(http.MethodGet, "/api/warehouses", token, nil, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "REVOKED_TOKEN", body.Code)
}

func TestRouter_EmpleadoBloqueadoPierdeSesion(t *testing.T) {
	api := newAPI(t)
	root := api.login("root", "rootpass")
	warehouseID, productID := api.seedCatalog(root)

	var emp idResponse
	resp := api.do(http.MethodPost, "/api/employees", root, fiber.Map{
		"username":     "cajero",
		"password":     "secret1",
		"full_name":    "Caja 2",
		"position":     entity.PositionCashier,
		"warehouse_id": warehouseID,
	}, &emp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := api.login("cajero", "secret1")
	resp = api.do(http.MethodGet, "/api/pos", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(http.MethodPut, "/api/employees/"+emp.ID, root, fiber.Map{"status": entity.EmployeeBlocked}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body errorBody
	resp = api.do(http.MethodPost, "/api/sales", token, fiber.Map{
		"payment_method": "cash",
		"items":          []fiber.Map{{"product_id": productID, "quantity": 1}},
	}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INACTIVE_USER", body.Code)

	resp = api.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "cajero", "password": "secret1"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_EmpleadoNoEditaPersonalDeOtraBodega(t *testing.T) {
	api := newAPI(t)
	root := api.login("root", "rootpass")

	var whA, whB, other idResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/warehouses", root, fiber.Map{"name": "A"}, &whA).StatusCode)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/warehouses", root, fiber.Map{"name": "B"}, &whB).StatusCode)
	resp := api.do(http.MethodPost, "/api/employees", root, fiber.Map{
		"username": "jefe_a", "password": "secret1", "full_name": "Jefe A",
		"position": entity.PositionAdmin, "warehouse_id": whA.ID,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = api.do(http.MethodPost, "/api/employees", root, fiber.Map{
		"username": "caja_b", "password": "secret1", "full_name": "Caja B",
		"position": entity.PositionCashier, "warehouse_id": whB.ID,
	}, &other)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := api.login("jefe_a", "secret1")
	var body errorBody
	resp = api.do(http.MethodPut, "/api/employees/"+other.ID, token, fiber.Map{"status": entity.EmployeeBlocked, "password": "hijack1"}, &body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)

	// la víctima sigue entrando con su contraseña
	api.login("caja_b", "secret1")
}

func TestRouter_IdentificadorMalformado(t *testing.T) {
	api := newAPI(t)
	token := api.login("root", "rootpass")

	var body errorBody
	resp := api.do(http.MethodGet, "/api/products/no-es-uuid", token, nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp = api.do(http.MethodDelete, "/api/incoming/123", token, nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/stocks?warehouse_id=xyz", token, nil, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)

	resp = api.do(http.MethodGet, "/api/reports/sales?warehouse_id=xyz", token, nil, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/reports/sales?export=csv&encoding=latin1", token, nil, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}
