package clients

import (
	"context"
)

const productsPath = "/api/products"

// CreateProductRequest mirrors the product form. Price and Stock are nil
// when the form value is not a number and are then sent as null.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    string   `json:"category"`
}

type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) CreateProduct(ctx context.Context, req CreateProductRequest) error {
	return pc.c.postJSON(ctx, productsPath, req, nil)
}
