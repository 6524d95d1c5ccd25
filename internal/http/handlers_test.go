package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"attar/internal/domain"
	"attar/internal/repository"
	"attar/internal/service"
	"attar/internal/session"
)

type testEnv struct {
	srv       *Server
	store     *repository.MemoryStore
	customers *repository.MemoryCustomers
	orders    *repository.MemoryOrders
	auth      *service.AuthService
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sessions := session.NewStore(client, time.Hour)

	store := repository.NewMemoryStore()
	customers := repository.NewMemoryCustomers(store)
	orders := repository.NewMemoryOrders(store)
	reviews := repository.NewMemoryReviews(store)
	admins := repository.NewMemoryAdmins(store)

	log := logrus.New()
	log.SetOutput(io.Discard)

	cart := service.NewCartService(store)
	auth := service.NewAuthService(admins)
	srv := NewServer(sessions, Services{
		Products:  service.NewProductService(store),
		Cart:      cart,
		Orders:    service.NewOrderService(cart, customers, orders, log),
		Customers: service.NewCustomerService(customers),
		Reviews:   service.NewReviewService(reviews, store),
		Auth:      auth,
	})
	return &testEnv{srv: srv, store: store, customers: customers, orders: orders, auth: auth}
}

func (e *testEnv) doForm(t *testing.T, method, path string, form url.Values, sid string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any, sid string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(w, req)
	return w
}

func cookieSID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	t.Fatalf("no session cookie issued")
	return ""
}

func (e *testEnv) seedProduct(t *testing.T, name string, price int64) *domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Brand: "Bardiya", Price: price, Stock: 10}
	if err := e.store.Create(context.Background(), &p); err != nil {
		t.Fatal(err)
	}
	return &p
}

func (e *testEnv) seedCustomer(t *testing.T) *domain.Customer {
	t.Helper()
	c := domain.Customer{Name: "Sara", Email: "sara@example.com", Phone: "5551234"}
	if err := e.customers.Insert(context.Background(), &c); err != nil {
		t.Fatal(err)
	}
	return &c
}

func (e *testEnv) loginCustomer(t *testing.T) string {
	t.Helper()
	e.seedCustomer(t)
	w := e.doForm(t, http.MethodPost, "/login", url.Values{"email": {"sara@example.com"}, "phone": {"5551234"}}, "")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("login code %v", w.Code)
	}
	return cookieSID(t, w)
}

func TestAddToCartAndView(t *testing.T) {
	e := setupServer(t)
	p := e.seedProduct(t, "Oud Royale", 100)

	w := e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"2"}}, "")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("add code %v, body %s", w.Code, w.Body.String())
	}
	sid := cookieSID(t, w)

	w = e.doJSON(t, http.MethodGet, "/cart", nil, sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cart code %v", w.Code)
	}
	var view domain.CartView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if len(view.Lines) != 1 || view.TotalPrice != 200 {
		t.Fatalf("unexpected cart view: %+v", view)
	}
}

func TestAddToCart_Errors(t *testing.T) {
	e := setupServer(t)
	p := e.seedProduct(t, "Oud", 100)

	// non-integer quantity
	w := e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"abc"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	// zero quantity
	w = e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"0"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	// unknown product
	w = e.doForm(t, http.MethodPost, "/add_to_cart/missing", url.Values{"quantity": {"1"}}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	e := setupServer(t)
	a := e.seedProduct(t, "A", 10)
	b := e.seedProduct(t, "B", 5)
	sid := e.loginCustomer(t)

	w := e.doForm(t, http.MethodPost, "/add_to_cart/"+a.ID, url.Values{"quantity": {"2"}}, sid)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("add a: %v", w.Code)
	}
	w = e.doForm(t, http.MethodPost, "/add_to_cart/"+b.ID, url.Values{"quantity": {"1"}}, sid)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("add b: %v", w.Code)
	}

	w = e.doJSON(t, http.MethodPost, "/checkout", nil, sid, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("checkout: %v, body %s", w.Code, w.Body.String())
	}
	orderID := w.Header().Get("X-Order-Id")
	if orderID == "" {
		t.Fatalf("no order id header")
	}

	o, err := e.orders.GetByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if o.TotalPrice != 25 || len(o.Lines) != 2 || o.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", o)
	}

	// cart is empty afterwards
	w = e.doJSON(t, http.MethodGet, "/cart", nil, sid, nil)
	var view domain.CartView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}

	// empty-cart checkout redirects and writes nothing
	w = e.doJSON(t, http.MethodPost, "/checkout", nil, sid, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("empty checkout: %v", w.Code)
	}
	list, _ := e.orders.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
}

func TestCheckout_RequiresLogin(t *testing.T) {
	e := setupServer(t)
	p := e.seedProduct(t, "A", 10)

	w := e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"1"}}, "")
	sid := cookieSID(t, w)

	w = e.doJSON(t, http.MethodPost, "/checkout", nil, sid, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}
}

func TestCheckout_IdempotencyKey(t *testing.T) {
	e := setupServer(t)
	p := e.seedProduct(t, "A", 10)
	sid := e.loginCustomer(t)

	headers := map[string]string{"Idempotency-Key": "retry-1"}

	e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"1"}}, sid)
	w := e.doJSON(t, http.MethodPost, "/checkout", nil, sid, headers)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("checkout: %v", w.Code)
	}
	first := w.Header().Get("X-Order-Id")

	// клиент повторяет запрос после таймаута: корзина уже снова не пуста
	e.doForm(t, http.MethodPost, "/add_to_cart/"+p.ID, url.Values{"quantity": {"1"}}, sid)
	w = e.doJSON(t, http.MethodPost, "/checkout", nil, sid, headers)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("retry checkout: %v", w.Code)
	}
	if got := w.Header().Get("X-Order-Id"); got != first {
		t.Fatalf("expected same order id, got %s and %s", first, got)
	}
	list, _ := e.orders.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
}

func TestRegisterAndDuplicate(t *testing.T) {
	e := setupServer(t)

	form := url.Values{"name": {"Sara"}, "email": {"sara@example.com"}, "phone": {"5551234"}}
	w := e.doForm(t, http.MethodPost, "/register", form, "")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register: %v, body %s", w.Code, w.Body.String())
	}
	w = e.doForm(t, http.MethodPost, "/register", form, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register expected 400, got %v", w.Code)
	}

	// wrong secret
	w = e.doForm(t, http.MethodPost, "/login", url.Values{"email": {"sara@example.com"}, "phone": {"wrong"}}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}
}

func TestReviewFlow(t *testing.T) {
	e := setupServer(t)
	p := e.seedProduct(t, "Oud", 100)
	sid := e.loginCustomer(t)

	w := e.doJSON(t, http.MethodPost, "/reviews/"+p.ID, map[string]any{"rating": 5, "comment": "great"}, sid, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("review: %v, body %s", w.Code, w.Body.String())
	}

	w = e.doJSON(t, http.MethodGet, "/product/"+p.ID, nil, sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("product detail: %v", w.Code)
	}
	var detail struct {
		Reviews []domain.Review `json:"reviews"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].Rating != 5 {
		t.Fatalf("review not listed: %+v", detail.Reviews)
	}
}

func TestAdminAuthAndCRUD(t *testing.T) {
	e := setupServer(t)
	if _, err := e.auth.CreateAdmin(context.Background(), "admin", "s3cret-passw0rd"); err != nil {
		t.Fatal(err)
	}

	// unauthorized
	w := e.doJSON(t, http.MethodGet, "/api/v1/admin/products", nil, "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}

	// login
	w = e.doJSON(t, http.MethodPost, "/adlogin", map[string]any{"username": "admin", "password": "s3cret-passw0rd"}, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("adlogin: %v, body %s", w.Code, w.Body.String())
	}
	sid := cookieSID(t, w)

	// create product
	w = e.doJSON(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name": "Oud Royale", "brand": "Bardiya", "price": 100, "stock": 5,
	}, sid, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %v, body %s", w.Code, w.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}

	// update
	w = e.doJSON(t, http.MethodPut, "/api/v1/admin/products/"+p.ID, map[string]any{
		"name": "Oud Royale", "brand": "Bardiya", "price": 120, "stock": 4,
	}, sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("update product: %v", w.Code)
	}

	// list
	w = e.doJSON(t, http.MethodGet, "/api/v1/admin/products", nil, sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products: %v", w.Code)
	}

	// delete
	w = e.doJSON(t, http.MethodDelete, "/api/v1/admin/products/"+p.ID, nil, sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete product: %v", w.Code)
	}
}

func TestAdminReviews(t *testing.T) {
	e := setupServer(t)
	if _, err := e.auth.CreateAdmin(context.Background(), "admin", "s3cret-passw0rd"); err != nil {
		t.Fatal(err)
	}
	p := e.seedProduct(t, "Oud", 100)
	sid := e.loginCustomer(t)
	w := e.doJSON(t, http.MethodPost, "/reviews/"+p.ID, map[string]any{"rating": 2, "comment": "weak"}, sid, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("review: %v", w.Code)
	}
	var r domain.Review
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}

	w = e.doJSON(t, http.MethodPost, "/adlogin", map[string]any{"username": "admin", "password": "s3cret-passw0rd"}, "", nil)
	adminSID := cookieSID(t, w)

	w = e.doJSON(t, http.MethodGet, "/api/v1/admin/reviews", nil, adminSID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reviews: %v", w.Code)
	}

	w = e.doJSON(t, http.MethodDelete, "/api/v1/admin/reviews/"+r.ID, nil, adminSID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete review: %v, body %s", w.Code, w.Body.String())
	}
	w = e.doJSON(t, http.MethodDelete, "/api/v1/admin/reviews/"+r.ID, nil, adminSID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete expected 404, got %v", w.Code)
	}
}

func TestAdminOrderStatus(t *testing.T) {
	e := setupServer(t)
	if _, err := e.auth.CreateAdmin(context.Background(), "admin", "s3cret-passw0rd"); err != nil {
		t.Fatal(err)
	}
	cust := e.seedCustomer(t)
	o := domain.Order{CustomerID: cust.ID, TotalPrice: 10, Status: domain.OrderStatusPending}
	if err := e.orders.Create(context.Background(), &o); err != nil {
		t.Fatal(err)
	}

	w := e.doJSON(t, http.MethodPost, "/adlogin", map[string]any{"username": "admin", "password": "s3cret-passw0rd"}, "", nil)
	sid := cookieSID(t, w)

	w = e.doJSON(t, http.MethodPut, "/api/v1/admin/orders/"+o.ID+"/status", map[string]any{"status": "shipped"}, sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status update: %v, body %s", w.Code, w.Body.String())
	}
	got, _ := e.orders.GetByID(context.Background(), o.ID)
	if got.Status != domain.OrderStatusShipped {
		t.Fatalf("status not updated: %s", got.Status)
	}

	w = e.doJSON(t, http.MethodPut, "/api/v1/admin/orders/"+o.ID+"/status", map[string]any{"status": "teleported"}, sid, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status expected 400, got %v", w.Code)
	}
}
