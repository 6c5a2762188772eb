// Package products submits the new-product form.
package products

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
)

// Form holds the raw field values exactly as entered.
type Form struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"price" yaml:"price"`
	Stock       string `json:"stock" yaml:"stock"`
	Category    string `json:"category" yaml:"category"`
}

// Reset clears every field.
func (f *Form) Reset() { *f = Form{} }

// ParseForm converts the fields into a create request. Price and stock are
// read the way a browser's parseFloat and parseInt read them: leading
// whitespace is skipped, the longest numeric prefix wins, and no prefix
// means "not a number".
func ParseForm(f Form) clients.CreateProductRequest {
	return clients.CreateProductRequest{
		Name:        f.Name,
		Description: f.Description,
		Price:       parseFloat(f.Price),
		Stock:       parseInt(f.Stock),
		Category:    f.Category,
	}
}

// LoadForm reads a form from a YAML (or JSON) file.
func LoadForm(path string) (*Form, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	var f Form
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse form file %s: %w", path, err)
	}
	return &f, nil
}
