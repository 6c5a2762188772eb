package products

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, req clients.CreateProductRequest) error
}

type Submitter struct {
	products ProductCreator
	events   events.Bus
	logger   *zap.Logger
}

func NewSubmitter(products ProductCreator, bus events.Bus, logger *zap.Logger) *Submitter {
	return &Submitter{products: products, events: bus, logger: logging.OrNop(logger)}
}

// Submit creates the product. Only on success is the form cleared and the
// product list told to refresh; errors are handed back untouched.
func (s *Submitter) Submit(ctx context.Context, f *Form) error {
	req := ParseForm(*f)
	log := logging.WithCtx(ctx, s.logger)

	if err := s.products.CreateProduct(ctx, req); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	log.Info("product created", zap.String("name", req.Name))
	f.Reset()

	if s.events != nil {
		ev := events.ProductListRefresh{Name: req.Name, Category: req.Category}
		if err := s.events.Publish(ctx, events.ProductListRefreshRoutingKey, ev); err != nil {
			log.Warn("publish product list refresh failed", zap.Error(err))
		}
	}
	return nil
}
