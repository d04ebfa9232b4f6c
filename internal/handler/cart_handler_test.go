package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopapp/internal/cart"
	"shopapp/internal/catalog"
	"shopapp/internal/domain/model"
	"shopapp/internal/kvstore"
	"shopapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartEcho(t *testing.T) *echo.Echo {
	t.Helper()

	ledger := cart.NewLedger(context.Background(), kvstore.NewMemoryStore(), cart.Config{}, nil)
	t.Cleanup(ledger.Close)

	uc := usecase.NewCartUsecase(ledger, catalog.NewStore(), nil)

	e := echo.New()
	NewCartHandler(uc).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) usecase.CartResponse {
	t.Helper()
	var resp usecase.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCartHandler_GetCart_InitiallyEmpty(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodGet, "/cart", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}

func TestCartHandler_AddToCart(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"1","quantity":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2), resp.Items[0].Quantity)
	assert.Equal(t, int64(2), resp.ItemCount)
}

func TestCartHandler_AddToCart_DefaultQuantityIsOne(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].Quantity)
}

func TestCartHandler_AddToCart_UnknownProduct(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"no-such"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestCartHandler_PatchItem(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPatch, "/cart/1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(5), resp.Items[0].Quantity)

	// 0は削除
	rec = doJSON(t, e, http.MethodPatch, "/cart/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_DeleteItemAndClear(t *testing.T) {
	e := newCartEcho(t)

	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"1"}`).Code)
	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"2"}`).Code)

	rec := doJSON(t, e, http.MethodDelete, "/cart/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeCart(t, rec).Items, 1)

	rec = doJSON(t, e, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_Checkout(t *testing.T) {
	e := newCartEcho(t)

	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/cart", `{"product_id":"1","quantity":2}`).Code)

	body := `{"shippingAddress":{"street":"1-2-3 Shibuya","city":"Tokyo","zipCode":"150-0002","country":"JP"},"paymentMethod":{"type":"credit_card"}}`
	rec := doJSON(t, e, http.MethodPost, "/cart/checkout", body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var ord model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ord))
	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, model.OrderStatusPending, ord.Status)
	assert.Equal(t, "Tokyo", ord.ShippingAddress.City)
	require.Len(t, ord.Items, 1)

	// 決済後はカートが空
	rec = doJSON(t, e, http.MethodGet, "/cart", "")
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	e := newCartEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/cart/checkout", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
