package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"shopapp/internal/auth"
	"shopapp/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "electronics", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Wireless Headphones"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	var out struct {
		Name string `json:"name"`
	}
	params := url.Values{}
	params.Set("category", "electronics")
	err := c.Get(context.Background(), "/items", params, &out)

	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", out.Name)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"o-1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "orders", map[string]string{"userId": "u-1"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "o-1", out.ID)
}

func TestClient_InjectsBearerFromStoredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), auth.TokenKey, "tok-123"))
	c := New(srv.URL, store)

	require.NoError(t, c.Get(context.Background(), "/me", nil, nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	require.NoError(t, c.Get(context.Background(), "/me", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_Non2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"order not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	err := c.Get(context.Background(), "/orders/missing", nil, nil)

	require.Error(t, err)
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "order not found", ae.Message)
}

func TestClient_ErrorBodyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "messageフィールド", body: `{"message":"upstream down"}`, want: "upstream down"},
		{name: "JSONでない本文", body: "plain failure", want: "plain failure"},
		{name: "空の本文", body: "", want: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, kvstore.NewMemoryStore())
			err := c.Get(context.Background(), "/x", nil, nil)

			ae, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, ae.Message)
		})
	}
}

func TestClient_LoadingTogglesAroundRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	var states []bool
	cancel := c.Loading().Subscribe(func(v bool) {
		states = append(states, v)
	})
	defer cancel()

	require.NoError(t, c.Get(context.Background(), "/x", nil, nil))

	// 初期false再生 → true → false
	assert.Equal(t, []bool{false, true, false}, states)
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/orders/o-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, kvstore.NewMemoryStore())

	assert.NoError(t, c.Delete(context.Background(), "/orders/o-1", nil))
}
