package httpapi

import (
	"context"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

// effects collects what a component asked the page to do while one request
// was being handled.
type effects struct {
	mu            sync.Mutex
	notifications []cart.Notification
	redirect      string
}

type effectsKey struct{}

func withEffects(ctx context.Context) (context.Context, *effects) {
	e := &effects{}
	return context.WithValue(ctx, effectsKey{}, e), e
}

func effectsFrom(ctx context.Context) *effects {
	e, _ := ctx.Value(effectsKey{}).(*effects)
	return e
}

// Notify is the cart.Notifier for the page host.
func Notify(ctx context.Context, n cart.Notification) {
	if e := effectsFrom(ctx); e != nil {
		e.mu.Lock()
		e.notifications = append(e.notifications, n)
		e.mu.Unlock()
	}
}

// Navigate is the cart.Navigator for the page host.
func Navigate(ctx context.Context, path string) {
	if e := effectsFrom(ctx); e != nil {
		e.mu.Lock()
		e.redirect = path
		e.mu.Unlock()
	}
}

func (e *effects) list() []cart.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]cart.Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

func (e *effects) target() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redirect
}
