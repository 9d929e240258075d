package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lilypay/internal/auth"
	"lilypay/internal/cart"
	"lilypay/internal/catalog"
	"lilypay/internal/logger"
	"lilypay/internal/models"
	"lilypay/internal/order"
	"lilypay/internal/report"
)

type fakeCatalogStore struct {
	items map[int]models.FoodItem
}

func (f *fakeCatalogStore) Categories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "Breakfast"}}, nil
}

func (f *fakeCatalogStore) Subcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	return nil, nil
}

func (f *fakeCatalogStore) FoodItems(ctx context.Context, subcategoryID int) ([]models.FoodItem, error) {
	return nil, nil
}

func (f *fakeCatalogStore) FoodItemByID(ctx context.Context, id int) (*models.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, catalog.ErrItemNotFound
	}
	return &item, nil
}

func (f *fakeCatalogStore) MenuDetails(ctx context.Context) ([]models.MenuItem, error) {
	return nil, nil
}

func (f *fakeCatalogStore) InsertCategory(ctx context.Context, c *models.Category) error {
	c.ID = 7
	return nil
}

func (f *fakeCatalogStore) InsertFoodItem(ctx context.Context, item *models.FoodItem) error {
	item.ID = 7
	return nil
}

func (f *fakeCatalogStore) SetAvailability(ctx context.Context, itemID int, available bool) error {
	return nil
}

type fakeOrderStore struct {
	created int
	orders  []models.Order
	lines   [][]models.OrderLine
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, o *models.Order, lines []models.OrderLine) (int, error) {
	f.created++
	o.CreatedAt = time.Now()
	f.orders = append(f.orders, *o)
	f.lines = append(f.lines, lines)
	return f.created, nil
}

func (f *fakeOrderStore) OrderByNumber(ctx context.Context, number string) (*models.Order, []models.OrderLine, error) {
	for i, o := range f.orders {
		if o.Number == number {
			return &f.orders[i], f.lines[i], nil
		}
	}
	return nil, nil, order.ErrOrderNotFound
}

type fakeReportStore struct{}

func (f *fakeReportStore) RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	return []models.OrderSummary{{ID: 1, Number: "TXN20250301120000"}}, nil
}

func (f *fakeReportStore) DailySales(ctx context.Context) ([]models.DailySales, error) {
	return []models.DailySales{{Date: "2025-03-01", OrderCount: 1}}, nil
}

func newTestServer(t *testing.T) (*Server, *auth.TokenManager, *fakeOrderStore) {
	t.Helper()
	log := logger.New("server-test")

	catalogStore := &fakeCatalogStore{items: map[int]models.FoodItem{
		1: {ID: 1, Name: "Coffee", Price: decimal.RequireFromString("50.00"), IsAvailable: true},
		2: {ID: 2, Name: "Pancakes", Price: decimal.RequireFromString("100.00"), IsAvailable: true},
		3: {ID: 3, Name: "Off Menu", IsAvailable: false},
	}}
	orderStore := &fakeOrderStore{}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	srv := New(
		nil,
		tokens,
		catalog.NewService(catalogStore, log),
		cart.NewRegistry(),
		order.NewService(orderStore, log, time.Second),
		report.NewService(&fakeReportStore{}, log, 50),
		nil,
		log,
	)
	return srv, tokens, orderStore
}

func cashierToken(t *testing.T, tokens *auth.TokenManager) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{ID: 42, Username: "cashier", Role: models.RoleCashier, FullName: "Test Cashier"})
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
}

func TestCartEndpoints_RequireToken(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItem_UnknownAndUnavailable(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]int{"item_id": 99})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]int{"item_id": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartFlow_AddTenderCommit(t *testing.T) {
	srv, tokens, orderStore := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	// Two coffees and one pancakes: 2x50 + 100 = 200
	for _, itemID := range []int{1, 1, 2} {
		rec := doRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]int{"item_id": itemID})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap cart.Snapshot
	decodeData(t, rec, &snap)
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.True(t, snap.Total.Equal(decimal.RequireFromString("200.00")), "total was %s", snap.Total)

	// Underpaying blocks the commit.
	rec = doRequest(t, router, http.MethodPut, "/api/cart/payment", token, map[string]string{"amount": "150"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/orders", token, map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, orderStore.created)

	// Paying enough commits and clears the cart.
	rec = doRequest(t, router, http.MethodPut, "/api/cart/payment", token, map[string]string{"amount": "250"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/orders", token, map[string]string{"payment_method": "cash"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, orderStore.created)

	var conf order.Confirmation
	decodeData(t, rec, &conf)
	assert.True(t, conf.TotalAmount.Equal(decimal.RequireFromString("200")), "total was %s", conf.TotalAmount)
	assert.True(t, conf.ChangeGiven.Equal(decimal.RequireFromString("50")), "change was %s", conf.ChangeGiven)

	rec = doRequest(t, router, http.MethodGet, "/api/cart", token, nil)
	decodeData(t, rec, &snap)
	assert.Empty(t, snap.Lines)
	assert.True(t, snap.Tendered.IsZero())

	// The committed order can be reloaded by its number.
	rec = doRequest(t, router, http.MethodGet, "/api/orders/"+conf.OrderNumber, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var details struct {
		Order models.Order       `json:"order"`
		Lines []models.OrderLine `json:"lines"`
	}
	decodeData(t, rec, &details)
	require.Len(t, details.Lines, 2)
	assert.True(t, details.Order.TotalAmount.Equal(conf.TotalAmount))

	rec = doRequest(t, router, http.MethodGet, "/api/orders/TXN00000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetQuantity_Endpoints(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]int{"item_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/cart/items/1", token, map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Positive quantity on a line that does not exist.
	rec = doRequest(t, router, http.MethodPut, "/api/cart/items/2", token, map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/cart/items/1", token, map[string]int{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero removes the line.
	rec = doRequest(t, router, http.MethodPut, "/api/cart/items/1", token, map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap cart.Snapshot
	decodeData(t, rec, &snap)
	assert.Empty(t, snap.Lines)
}

func TestCommitOrder_EmptyCart(t *testing.T) {
	srv, tokens, orderStore := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodPost, "/api/orders", token, map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, orderStore.created)
}

func TestAdminEndpoints_ForbiddenForCashier(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodPost, "/api/admin/categories", token, map[string]string{"name": "Brunch"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateCategory(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()

	token, err := tokens.Issue(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin, FullName: "Admin"})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/admin/categories", token, map[string]string{"name": "Brunch"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var category models.Category
	decodeData(t, rec, &category)
	assert.Equal(t, "Brunch", category.Name)
	assert.NotZero(t, category.ID)
}

func TestRecentOrdersAndDailySales(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodGet, "/api/orders/recent?limit=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []models.OrderSummary
	decodeData(t, rec, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, "TXN20250301120000", summaries[0].Number)

	rec = doRequest(t, router, http.MethodGet, "/api/reports/daily-sales", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sales []models.DailySales
	decodeData(t, rec, &sales)
	require.Len(t, sales, 1)
	assert.Equal(t, "2025-03-01", sales[0].Date)
}

func TestCartContext(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	tableNumber := 12
	orderType := "take_out"
	rec := doRequest(t, router, http.MethodPut, "/api/cart/context", token, map[string]interface{}{
		"table_number": tableNumber,
		"order_type":   orderType,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap cart.Snapshot
	decodeData(t, rec, &snap)
	assert.Equal(t, tableNumber, snap.TableNumber)
	assert.Equal(t, models.TakeOut, snap.OrderType)

	rec = doRequest(t, router, http.MethodPut, "/api/cart/context", token, map[string]interface{}{
		"order_type": "delivery",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryIntValidation(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	router := srv.Routes()
	token := cashierToken(t, tokens)

	rec := doRequest(t, router, http.MethodGet, "/api/orders/recent?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/catalog/subcategories?category_id=%s", "xyz"), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
