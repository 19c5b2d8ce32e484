package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/actor"
	"github.com/nikolayk812/cartcore/internal/api"
	"github.com/nikolayk812/cartcore/internal/auth"
	"github.com/nikolayk812/cartcore/internal/cart"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/presenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	testAPIKey = "internal-key"
	storeSlug  = "approved-shop"
)

var jwtSecret = strings.Repeat("j", 32)

type stubStores struct {
	store domain.Store
}

func (s stubStores) GetStoreBySlug(_ context.Context, slug string) (domain.Store, error) {
	if slug != s.store.Slug {
		return domain.Store{}, fmt.Errorf("store[%s]: %w", slug, domain.ErrStoreNotFound)
	}
	return s.store, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

// stubCarts records the last call and answers with view or err.
type stubCarts struct {
	view presenter.CartView
	cart domain.Cart
	err  error

	storeID  uuid.UUID
	actor    domain.Actor
	input    cart.AddItemInput
	itemID   uuid.UUID
	quantity int
	userID   string
	guest    string
	cartID   uuid.UUID
}

func (s *stubCarts) GetActiveCart(_ context.Context, storeID uuid.UUID, a domain.Actor) (presenter.CartView, error) {
	s.storeID, s.actor = storeID, a
	return s.view, s.err
}

func (s *stubCarts) AddItem(_ context.Context, storeID uuid.UUID, a domain.Actor, in cart.AddItemInput) (presenter.CartView, error) {
	s.storeID, s.actor, s.input = storeID, a, in
	return s.view, s.err
}

func (s *stubCarts) UpdateItem(_ context.Context, storeID uuid.UUID, a domain.Actor, itemID uuid.UUID, quantity int) (presenter.CartView, error) {
	s.storeID, s.actor, s.itemID, s.quantity = storeID, a, itemID, quantity
	return s.view, s.err
}

func (s *stubCarts) RemoveItem(_ context.Context, storeID uuid.UUID, a domain.Actor, itemID uuid.UUID) (presenter.CartView, error) {
	s.storeID, s.actor, s.itemID = storeID, a, itemID
	return s.view, s.err
}

func (s *stubCarts) MergeGuestIntoUser(_ context.Context, storeID uuid.UUID, userID, guestToken string) (presenter.CartView, error) {
	s.storeID, s.userID, s.guest = storeID, userID, guestToken
	return s.view, s.err
}

func (s *stubCarts) BeginCheckout(_ context.Context, storeID uuid.UUID, a domain.Actor) (domain.Cart, error) {
	s.storeID, s.actor = storeID, a
	return s.cart, s.err
}

func (s *stubCarts) CompleteCheckout(_ context.Context, storeID uuid.UUID, owner domain.Actor) (domain.Cart, error) {
	s.storeID, s.actor = storeID, owner
	return s.cart, s.err
}

func (s *stubCarts) AbandonCart(_ context.Context, cartID uuid.UUID) (domain.Cart, error) {
	s.cartID = cartID
	return s.cart, s.err
}

type routerSuite struct {
	suite.Suite

	carts  *stubCarts
	store  domain.Store
	jwt    *auth.JWTService
	router *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(routerSuite))
}

func (suite *routerSuite) SetupTest() {
	suite.carts = &stubCarts{
		view: presenter.Present(&domain.Cart{ID: uuid.New(), Status: domain.CartStatusActive}),
	}
	suite.store = domain.Store{ID: uuid.New(), Slug: storeSlug, Currency: "MXN"}
	suite.jwt = auth.NewJWTService(jwtSecret, time.Hour)

	suite.router = api.NewRouter(api.RouterConfig{
		Handlers:   api.NewHandlers(suite.carts, zap.NewNop(), 99),
		Stores:     stubStores{store: suite.store},
		JWTService: suite.jwt,
		Resolver:   actor.NewResolver(),
		APIKey:     testAPIKey,
		Logger:     zap.NewNop(),
	})
}

type request struct {
	method  string
	path    string
	body    string
	headers map[string]string
}

func (suite *routerSuite) do(r request) *httptest.ResponseRecorder {
	req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *routerSuite) bearer(userID string) string {
	token, _, err := suite.jwt.GenerateAccessToken(userID)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *routerSuite) TestGetCart_ActorResolution() {
	userID, guestToken := gofakeit.UUID(), gofakeit.UUID()

	tests := []struct {
		name        string
		path        string
		headers     map[string]string
		wantActor   func(minted string) domain.Actor
		wantMinted  bool
		wantGuestID bool
	}{
		{
			name:        "anonymous caller gets a minted guest token",
			path:        "/api/cart/" + storeSlug,
			wantActor:   func(minted string) domain.Actor { return domain.Guest(minted) },
			wantMinted:  true,
			wantGuestID: true,
		},
		{
			name:        "guest token from header",
			path:        "/api/cart/" + storeSlug,
			headers:     map[string]string{api.GuestHeader: guestToken},
			wantActor:   func(string) domain.Actor { return domain.Guest(guestToken) },
			wantGuestID: true,
		},
		{
			name:        "guest token from query",
			path:        "/api/cart/" + storeSlug + "?guestId=" + guestToken,
			wantActor:   func(string) domain.Actor { return domain.Guest(guestToken) },
			wantGuestID: true,
		},
		{
			name:      "user",
			path:      "/api/cart/" + storeSlug,
			headers:   map[string]string{"Authorization": suite.bearer(userID)},
			wantActor: func(string) domain.Actor { return domain.User(userID) },
		},
		{
			name: "user still holding the guest token",
			path: "/api/cart/" + storeSlug,
			headers: map[string]string{
				"Authorization": suite.bearer(userID),
				api.GuestHeader: guestToken,
			},
			wantActor: func(string) domain.Actor { return domain.UserWithGuest(userID, guestToken) },
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			w := suite.do(request{method: http.MethodGet, path: tt.path, headers: tt.headers})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			minted := w.Header().Get(api.GuestHeader)
			if tt.wantMinted {
				assert.Regexp(t, `^[0-9a-f]{32}$`, minted)
			} else {
				assert.Empty(t, minted)
			}

			assert.Equal(t, tt.wantActor(minted), suite.carts.actor)
			assert.Equal(t, suite.store.ID, suite.carts.storeID)

			body := decode(t, w)
			assert.Equal(t, storeSlug, body["storeSlug"])
			if tt.wantGuestID {
				assert.Equal(t, suite.carts.actor.ID(), body["guestId"])
			} else {
				assert.Nil(t, body["guestId"])
			}
		})
	}
}

func (suite *routerSuite) TestGetCart_Rejections() {
	t := suite.T()

	w := suite.do(request{method: http.MethodGet, path: "/api/cart/" + storeSlug, headers: map[string]string{"Authorization": "Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.do(request{method: http.MethodGet, path: "/api/cart/unknown-shop"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.ErrStoreNotFound.Error(), decode(t, w)["error"])
}

func (suite *routerSuite) TestAddItem() {
	productID, variantID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantInput  cart.AddItemInput
	}{
		{
			name:       "quantity defaults to one",
			body:       fmt.Sprintf(`{"productId":%q}`, productID),
			wantStatus: http.StatusOK,
			wantInput:  cart.AddItemInput{ProductID: productID, Quantity: 1},
		},
		{
			name:       "variant and quantity",
			body:       fmt.Sprintf(`{"productId":%q,"variantId":%q,"quantity":3}`, productID, variantID),
			wantStatus: http.StatusOK,
			wantInput:  cart.AddItemInput{ProductID: productID, VariantID: uuid.NullUUID{UUID: variantID, Valid: true}, Quantity: 3},
		},
		{
			name:       "quantity is clamped",
			body:       fmt.Sprintf(`{"productId":%q,"quantity":500}`, productID),
			wantStatus: http.StatusOK,
			wantInput:  cart.AddItemInput{ProductID: productID, Quantity: 99},
		},
		{
			name:       "zero quantity",
			body:       fmt.Sprintf(`{"productId":%q,"quantity":0}`, productID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing product",
			body:       `{"quantity":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"productId":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "variant not applicable",
			body:       fmt.Sprintf(`{"productId":%q,"variantId":%q}`, productID, variantID),
			serviceErr: fmt.Errorf("add item: %w", domain.ErrVariantNotApplicable),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "product not found",
			body:       fmt.Sprintf(`{"productId":%q}`, productID),
			serviceErr: domain.ErrProductNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			suite.carts.err = tt.serviceErr
			suite.carts.input = cart.AddItemInput{}

			w := suite.do(request{
				method:  http.MethodPost,
				path:    "/api/cart/" + storeSlug + "/items",
				body:    tt.body,
				headers: map[string]string{api.GuestHeader: "g-1"},
			})
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantInput, suite.carts.input)
				assert.Equal(t, domain.Guest("g-1"), suite.carts.actor)
			}
		})
	}
}

func (suite *routerSuite) TestAddItem_StockError() {
	t := suite.T()
	suite.carts.err = fmt.Errorf("add item: %w", &domain.StockError{Err: domain.ErrInsufficientStock, Stock: 1, Requested: 2})

	w := suite.do(request{
		method: http.MethodPost,
		path:   "/api/cart/" + storeSlug + "/items",
		body:   fmt.Sprintf(`{"productId":%q,"quantity":2}`, uuid.New()),
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode(t, w)
	assert.Equal(t, domain.ErrInsufficientStock.Error(), body["error"])
	assert.EqualValues(t, 1, body["stock"])
	assert.EqualValues(t, 2, body["requested"])
}

func (suite *routerSuite) TestUpdateAndRemoveItem() {
	t := suite.T()
	itemID := uuid.New()
	path := "/api/cart/" + storeSlug + "/items/"
	guest := map[string]string{api.GuestHeader: "g-2"}

	w := suite.do(request{method: http.MethodPatch, path: path + itemID.String(), body: `{"quantity":4}`, headers: guest})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, itemID, suite.carts.itemID)
	assert.Equal(t, 4, suite.carts.quantity)

	w = suite.do(request{method: http.MethodPatch, path: path + itemID.String(), body: `{"quantity":0}`, headers: guest})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, suite.carts.quantity)

	w = suite.do(request{method: http.MethodPatch, path: path + itemID.String(), body: `{}`, headers: guest})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.do(request{method: http.MethodPatch, path: path + itemID.String(), body: `{"quantity":-1}`, headers: guest})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.do(request{method: http.MethodPatch, path: path + "not-a-uuid", body: `{"quantity":1}`, headers: guest})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	suite.carts.err = domain.ErrItemNotFound
	w = suite.do(request{method: http.MethodDelete, path: path + itemID.String(), headers: guest})
	assert.Equal(t, http.StatusNotFound, w.Code)

	suite.carts.err = nil
	w = suite.do(request{method: http.MethodDelete, path: path + itemID.String(), headers: guest})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Guest("g-2"), suite.carts.actor)
}

func (suite *routerSuite) TestMerge() {
	t := suite.T()
	userID := gofakeit.UUID()
	path := "/api/cart/" + storeSlug + "/merge"

	w := suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{api.GuestHeader: "g-3"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{"Authorization": suite.bearer(userID)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{
		"Authorization": suite.bearer(userID),
		api.GuestHeader: "g-3",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, suite.carts.userID)
	assert.Equal(t, "g-3", suite.carts.guest)
	assert.Nil(t, decode(t, w)["guestId"])
}

func (suite *routerSuite) TestCheckout() {
	t := suite.T()
	path := "/api/cart/" + storeSlug + "/checkout"
	suite.carts.cart = domain.Cart{ID: uuid.New(), Status: domain.CartStatusCheckoutPending}

	w := suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{api.GuestHeader: "g-4"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "api key required")

	w = suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{api.APIKeyHeader: testAPIKey}})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "checkout never mints a guest")
	assert.Empty(t, w.Header().Get(api.GuestHeader))

	w = suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{
		api.APIKeyHeader: testAPIKey,
		api.GuestHeader:  "g-4",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "checkout_pending", decode(t, w)["status"])

	suite.carts.err = domain.ErrCartEmpty
	w = suite.do(request{method: http.MethodPost, path: path, headers: map[string]string{
		api.APIKeyHeader: testAPIKey,
		api.GuestHeader:  "g-4",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *routerSuite) TestInternalRoutes() {
	t := suite.T()
	key := map[string]string{api.APIKeyHeader: testAPIKey}
	suite.carts.cart = domain.Cart{ID: uuid.New(), Status: domain.CartStatusCompleted}

	w := suite.do(request{method: http.MethodPost, path: "/internal/stores/" + storeSlug + "/carts/complete", body: `{"userId":"u-9"}`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.do(request{method: http.MethodPost, path: "/internal/stores/" + storeSlug + "/carts/complete", body: `{"userId":"u-9"}`, headers: key})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.User("u-9"), suite.carts.actor)

	w = suite.do(request{method: http.MethodPost, path: "/internal/stores/" + storeSlug + "/carts/complete", body: `{"guestId":"g-9"}`, headers: key})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Guest("g-9"), suite.carts.actor)

	w = suite.do(request{method: http.MethodPost, path: "/internal/stores/" + storeSlug + "/carts/complete", body: `{}`, headers: key})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	cartID := uuid.New()
	suite.carts.err = domain.ErrInvalidTransition
	w = suite.do(request{method: http.MethodPost, path: "/internal/carts/" + cartID.String() + "/abandon", headers: key})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, cartID, suite.carts.cartID)
}

func (suite *routerSuite) TestErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  bool
	}{
		{name: "concurrency conflict", err: domain.ErrConcurrencyConflict, wantStatus: http.StatusConflict, wantRetry: true},
		{name: "actor required", err: domain.ErrActorRequired, wantStatus: http.StatusUnauthorized},
		{name: "variant required", err: domain.ErrVariantRequired, wantStatus: http.StatusBadRequest},
		{name: "out of stock", err: &domain.StockError{Err: domain.ErrOutOfStock}, wantStatus: http.StatusUnprocessableEntity},
		{name: "unexpected", err: errors.New("pool exhausted"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			suite.carts.err = tt.err

			w := suite.do(request{method: http.MethodGet, path: "/api/cart/" + storeSlug, headers: map[string]string{api.GuestHeader: "g-5"}})
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantRetry {
				assert.Equal(t, "1", w.Header().Get("Retry-After"))
			}
			assert.NotContains(t, w.Body.String(), "pool exhausted")
		})
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := api.NewRouter(api.RouterConfig{
		Handlers:   api.NewHandlers(&stubCarts{}, zap.NewNop(), 99),
		Stores:     stubStores{},
		JWTService: auth.NewJWTService(jwtSecret, time.Hour),
		Resolver:   actor.NewResolver(),
		APIKey:     testAPIKey,
		DB:         failingPinger{},
		Logger:     zap.NewNop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
