package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/products"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// upstream fakes the shop backend. Status codes can be switched per test.
type upstream struct {
	orderStatus   atomic.Int32
	productStatus atomic.Int32
	orders        atomic.Int32
	lastOrder     atomic.Value
	lastCID       atomic.Value
}

func newUpstream(t *testing.T) (*upstream, *httptest.Server) {
	t.Helper()
	u := &upstream{}
	u.orderStatus.Store(http.StatusCreated)
	u.productStatus.Store(http.StatusCreated)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/api/orders":
			u.orders.Add(1)
			u.lastOrder.Store(string(body))
			u.lastCID.Store(r.Header.Get(middleware.HeaderCorrelationID))
			w.WriteHeader(int(u.orderStatus.Load()))
			_, _ = w.Write([]byte(`{}`))
		case "/api/products":
			w.WriteHeader(int(u.productStatus.Load()))
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
		case "/api/ai/bedrock/start":
			_, _ = w.Write([]byte(`{"sessionId":"s-1"}`))
		case "/api/ai/bedrock/message":
			var req map[string]string
			_ = json.Unmarshal(body, &req)
			_ = json.NewEncoder(w).Encode(map[string]string{"response": "re: " + req["message"]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return u, srv
}

type page struct {
	router http.Handler
	store  *cart.Store
	bus    *events.Local
	up     *upstream
}

func newPage(t *testing.T) *page {
	t.Helper()
	up, srv := newUpstream(t)

	base := clients.NewClient("test", srv.URL, &http.Client{Timeout: 5 * time.Second})
	bus := events.NewLocal(nil)
	t.Cleanup(func() { _ = bus.Close() })

	store := cart.NewStore(context.Background(), storage.NewMemory(), cart.Options{
		Orders:   clients.NewOrderClient(base),
		Notify:   Notify,
		Navigate: Navigate,
		Events:   bus,
	})
	session := chat.NewSession(clients.NewAssistantClient(base), chat.Options{})
	submitter := products.NewSubmitter(clients.NewProductClient(base), bus, nil)

	router := NewRouter(Deps{
		Handler:          NewHandler(store, session, submitter, nil),
		HealthProbes:     []clients.HealthProbe{{Name: "shop", Client: base, Path: "/health"}},
		CORSAllowOrigins: []string{"*"},
	})
	return &page{router: router, store: store, bus: bus, up: up}
}

func (p *page) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(middleware.HeaderCorrelationID, "cid-test")
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cid-test", rec.Header().Get(middleware.HeaderCorrelationID))
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = p.do(t, http.MethodGet, "/health/upstreams", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"shop","ok":true`)
}

func TestCartPageEmpty(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Your cart is empty")
	assert.Contains(t, rec.Body.String(), `<button id="checkout-button" disabled>`)
}

func TestAddItemReturnsNotification(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodPost, "/cart/items", `{"id":"p1","name":"Widget","price":10,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[effectsResponse](t, rec)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []cart.Notification{{Kind: cart.KindInfo, Message: "Added 2 Widget to cart!"}}, res.Notifications)

	view := decode[cart.View](t, p.do(t, http.MethodGet, "/cart.json", ""))
	assert.True(t, view.CheckoutEnabled)
	assert.Equal(t, 22.0, view.Totals.Total)
}

func TestAddItemZeroQuantityIsSilent(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodPost, "/cart/items", `{"id":"p1","name":"Widget","price":10,"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[effectsResponse](t, rec)
	assert.Empty(t, res.Notifications)
	assert.Zero(t, res.Count)
}

func TestAddItemBadJSON(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodPost, "/cart/items", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cid-test", decode[map[string]string](t, rec)["correlationId"])
}

func TestRemoveItemRendersFragment(t *testing.T) {
	p := newPage(t)
	p.do(t, http.MethodPost, "/cart/items", `{"id":"p1","name":"Widget","price":10,"quantity":1}`)

	rec := p.do(t, http.MethodPost, "/cart/items/p1/remove", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your cart is empty")
	assert.Zero(t, p.store.Count())
}

func TestCheckoutSuccessRedirects(t *testing.T) {
	p := newPage(t)
	placed, cancel, err := p.bus.Subscribe(events.OrderPlacedRoutingKey)
	require.NoError(t, err)
	defer cancel()

	p.do(t, http.MethodPost, "/cart/items", `{"id":"p1","name":"Widget","price":10,"quantity":3}`)

	rec := p.do(t, http.MethodPost, "/cart/checkout", `{"email":"a@b.test"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/orders", decode[effectsResponse](t, rec).Redirect)

	assert.JSONEq(t, `{"userEmail":"a@b.test","items":[{"productId":"p1","quantity":3,"price":10}],"total":30}`,
		p.up.lastOrder.Load().(string))
	assert.Equal(t, "cid-test", p.up.lastCID.Load())
	assert.Zero(t, p.store.Count())

	env := <-placed
	assert.Equal(t, "cid-test", env.CorrelationID)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	p := newPage(t)
	p.up.orderStatus.Store(http.StatusInternalServerError)
	p.do(t, http.MethodPost, "/cart/items", `{"id":"p1","name":"Widget","price":10,"quantity":3}`)

	rec := p.do(t, http.MethodPost, "/cart/checkout", `{"email":"a@b.test"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	res := decode[effectsResponse](t, rec)
	assert.Empty(t, res.Redirect)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []cart.Notification{{Kind: cart.KindError, Message: "Error creating order: Failed to create order"}}, res.Notifications)
	assert.Equal(t, 3, p.store.Count())
}

func TestCheckoutEmptyCart(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodPost, "/cart/checkout", `{"email":"a@b.test"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, p.up.orders.Load())
}

func TestChatFlow(t *testing.T) {
	p := newPage(t)

	rec := p.do(t, http.MethodPost, "/chat/messages", `{"message":"too early"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[chatResponse](t, rec).Transcript)

	rec = p.do(t, http.MethodPost, "/chat/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[chatResponse](t, rec)
	assert.True(t, state.Visible)
	assert.Equal(t, "s-1", state.SessionID)
	assert.Equal(t, []chat.Message{{Role: chat.RoleAssistant, Text: chat.Greeting}}, state.Transcript)

	rec = p.do(t, http.MethodPost, "/chat/messages", `{"message":"  widgets?  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decode[chatResponse](t, rec)
	require.Len(t, state.Transcript, 3)
	assert.Equal(t, chat.Message{Role: chat.RoleUser, Text: "widgets?"}, state.Transcript[1])
	assert.Equal(t, chat.Message{Role: chat.RoleAssistant, Text: "re: widgets?"}, state.Transcript[2])
}

func TestCreateProduct(t *testing.T) {
	p := newPage(t)
	refresh, cancel, err := p.bus.Subscribe(events.ProductListRefreshRoutingKey)
	require.NoError(t, err)
	defer cancel()

	rec := p.do(t, http.MethodPost, "/products", `{"name":"Widget","price":"9.99","stock":"4","category":"tools"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	env := <-refresh
	assert.Equal(t, events.ProductListRefreshRoutingKey, env.EventName)
}

func TestCreateProductUpstreamFailure(t *testing.T) {
	p := newPage(t)
	p.up.productStatus.Store(http.StatusBadRequest)

	rec := p.do(t, http.MethodPost, "/products", `{"name":"Widget"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "nope"))
}

func TestUnknownRoute(t *testing.T) {
	p := newPage(t)
	assert.Equal(t, http.StatusNotFound, p.do(t, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, p.do(t, http.MethodDelete, "/cart", "").Code)
}
