package clients

import (
	"context"
)

const ordersPath = "/api/orders"

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserEmail string      `json:"userEmail"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
}

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// CreateOrder succeeds on any 2xx; the response body is not interpreted.
func (oc *OrderClient) CreateOrder(ctx context.Context, req CreateOrderRequest) error {
	return oc.c.postJSON(ctx, ordersPath, req, nil)
}
