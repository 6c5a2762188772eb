package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// OrdersPath is where a successful checkout sends the user.
const OrdersPath = "/orders"

var ErrEmptyCart = errors.New("cart is empty")

type OrderCreator interface {
	CreateOrder(ctx context.Context, req clients.CreateOrderRequest) error
}

type Options struct {
	Orders   OrderCreator
	Notify   Notifier
	Navigate Navigator
	Events   events.Bus
	Logger   *zap.Logger
}

// Store is the cart of one page. Every mutation is written through to kv.
type Store struct {
	mu    sync.Mutex
	kv    storage.KV
	items []LineItem

	orders   OrderCreator
	notify   Notifier
	navigate Navigator
	events   events.Bus
	logger   *zap.Logger
}

// NewStore loads the persisted cart. Missing or unreadable state yields an
// empty cart.
func NewStore(ctx context.Context, kv storage.KV, opts Options) *Store {
	s := &Store{
		kv:       kv,
		orders:   opts.Orders,
		notify:   opts.Notify,
		navigate: opts.Navigate,
		events:   opts.Events,
		logger:   logging.OrNop(opts.Logger),
	}
	if s.notify == nil {
		s.notify = func(context.Context, Notification) {}
	}
	if s.navigate == nil {
		s.navigate = func(context.Context, string) {}
	}
	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []LineItem {
	log := logging.WithCtx(ctx, s.logger)

	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Warn("read cart failed; starting empty", zap.Error(err))
		return nil
	}

	items, err := decodeItems(raw)
	if err != nil {
		log.Debug("discarding malformed cart state", zap.Error(err))
		return nil
	}
	return items
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	raw, err := encodeItems(s.items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		logging.WithCtx(ctx, s.logger).Error("persist cart failed", zap.Error(err))
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// AddItem adds quantity units of a product. Quantities below one are ignored.
func (s *Store) AddItem(ctx context.Context, id, name string, unitPrice float64, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{
			ID:        id,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
		})
	}
	err := s.persist(ctx)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	logging.WithCtx(ctx, s.logger).Debug("item added",
		zap.String("product_id", id),
		zap.Int("quantity", quantity))

	s.notify(ctx, Notification{
		Kind:    KindInfo,
		Message: fmt.Sprintf("Added %d %s to cart!", quantity, name),
	})
	return nil
}

// RemoveItem drops every line for id and returns the refreshed view.
func (s *Store) RemoveItem(ctx context.Context, id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept

	err := s.persist(ctx)
	return buildView(s.items), err
}

func (s *Store) Render() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildView(s.items)
}

// Count is the number of units in the cart (the header badge).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalOf(s.items)
}

func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Checkout submits the cart as an order for email. The order total is the
// tax-exclusive subtotal. On success the cart is cleared and the host is
// sent to OrdersPath; on failure the cart is left as is and the user is
// notified.
func (s *Store) Checkout(ctx context.Context, email string) error {
	log := logging.WithCtx(ctx, s.logger)

	items := s.Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if s.orders == nil {
		return errors.New("cart has no order client")
	}

	req := clients.CreateOrderRequest{
		UserEmail: email,
		Items:     make([]clients.OrderItem, 0, len(items)),
		Total:     subtotalOf(items),
	}
	for _, it := range items {
		req.Items = append(req.Items, clients.OrderItem{
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	if err := s.orders.CreateOrder(ctx, req); err != nil {
		log.Warn("create order failed", zap.Error(err))
		s.notify(ctx, Notification{
			Kind:    KindError,
			Message: "Error creating order: " + failureReason(err),
		})
		return fmt.Errorf("checkout: %w", err)
	}

	s.mu.Lock()
	s.items = nil
	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		log.Error("clear cart failed", zap.Error(err))
	}
	s.mu.Unlock()

	log.Info("order placed", zap.Int("lines", len(req.Items)), zap.Float64("total", req.Total))
	s.publishOrderPlaced(ctx, req)
	s.navigate(ctx, OrdersPath)
	return nil
}

func (s *Store) publishOrderPlaced(ctx context.Context, req clients.CreateOrderRequest) {
	if s.events == nil {
		return
	}
	ev := events.OrderPlaced{
		UserEmail: req.UserEmail,
		Total:     req.Total,
		Items:     make([]events.OrderPlacedItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		ev.Items = append(ev.Items, events.OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	if err := s.events.Publish(ctx, events.OrderPlacedRoutingKey, ev); err != nil {
		logging.WithCtx(ctx, s.logger).Warn("publish order placed failed", zap.Error(err))
	}
}

// failureReason is the text shown after "Error creating order: ".
func failureReason(err error) string {
	if _, ok := clients.IsStatus(err); ok {
		return "Failed to create order"
	}
	return err.Error()
}
