// Package orders は注文管理のリモートAPIを型付きで呼ぶ。
// 業務ロジックはリモート側の責務で、ここはDTOの往復だけを持つ。
package orders

import (
	"context"
	"net/url"
	"strconv"

	"shopapp/internal/apiclient"
	"shopapp/internal/domain/model"
)

const endpoint = "orders"

// APIの共通封筒
type response[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status"`
	Success bool   `json:"success"`
}

type CreateItem struct {
	ProductID string  `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateRequest struct {
	Items           []CreateItem        `json:"items"`
	ShippingAddress model.Address       `json:"shippingAddress"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	Notes           string              `json:"notes,omitempty"`
}

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Create(ctx context.Context, in CreateRequest) (model.Order, error) {
	var resp response[model.Order]
	if err := c.api.Post(ctx, endpoint, in, &resp); err != nil {
		return model.Order{}, err
	}
	return resp.Data, nil
}

func (c *Client) ListByUser(ctx context.Context, userID string, status model.OrderStatus, limit int) ([]model.Order, error) {
	params := url.Values{}
	if userID != "" {
		params.Set("userId", userID)
	}
	if status != "" {
		params.Set("status", string(status))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp response[[]model.Order]
	if err := c.api.Get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetByID(ctx context.Context, orderID string) (model.Order, error) {
	var resp response[model.Order]
	if err := c.api.Get(ctx, endpoint+"/"+orderID, nil, &resp); err != nil {
		return model.Order{}, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	body := map[string]model.OrderStatus{"status": status}
	var resp response[model.Order]
	if err := c.api.Put(ctx, endpoint+"/"+orderID+"/status", body, &resp); err != nil {
		return model.Order{}, err
	}
	return resp.Data, nil
}

func (c *Client) Cancel(ctx context.Context, orderID string, reason string) (bool, error) {
	body := map[string]string{"reason": reason}
	var resp response[bool]
	if err := c.api.Put(ctx, endpoint+"/"+orderID+"/cancel", body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}
