// Package apiclient はリモートAPIへの汎用トランスポート。
// ローカル保存されたauth_tokenをBearerヘッダとして自動注入する。
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopapp/internal/auth"
	"shopapp/internal/kvstore"
	"shopapp/internal/pubsub"
)

// 非2xx応答
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

type Client struct {
	baseURL string
	http    *http.Client
	store   kvstore.Store
	loading *pubsub.Subject[bool]
}

func New(baseURL string, store kvstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		loading: pubsub.NewSubjectWith(false),
	}
}

// リクエスト中フラグ（購読時に現在値を再生）
func (c *Client) Loading() *pubsub.Subject[bool] {
	return c.loading
}

func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, out any) error {
	return c.do(ctx, http.MethodPut, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), nil, out)
}

func (c *Client) do(ctx context.Context, method, u string, body any, out any) error {
	c.loading.Publish(true)
	defer c.loading.Publish(false)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// 保存済みトークンがあればBearer注入
	if token, err := c.store.Get(ctx, auth.TokenKey); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// {"error": "..."}形式の本文からメッセージを拾う
func errorMessage(raw []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = "request failed"
	}
	return msg
}
