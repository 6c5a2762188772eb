package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
)

const subscriberBuffer = 32

var ErrClosed = errors.New("event bus is closed")

// Local fans events out to in-process subscribers over buffered channels.
type Local struct {
	mu     sync.RWMutex
	subs   map[string][]chan Envelope
	closed bool
	logger *zap.Logger
	now    func() time.Time
}

func NewLocal(logger *zap.Logger) *Local {
	return &Local{
		subs:   make(map[string][]chan Envelope),
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Publish never blocks. A subscriber whose buffer is full misses the event.
func (l *Local) Publish(ctx context.Context, routingKey string, payload any) error {
	env, err := newEnvelope(ctx, defaultProducer, routingKey, payload, l.now())
	if err != nil {
		return err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrClosed
	}

	var dropped int
	for _, ch := range l.subs[routingKey] {
		select {
		case ch <- env:
		default:
			dropped++
		}
	}

	log := logging.WithCtx(ctx, l.logger)
	log.Debug("event published",
		zap.String("routingKey", routingKey),
		zap.Int("subscribers", len(l.subs[routingKey])))

	if dropped > 0 {
		return fmt.Errorf("%d subscriber(s) of %s are full", dropped, routingKey)
	}
	return nil
}

// Subscribe returns a channel of events for routingKey and a cancel func
// that detaches and closes it.
func (l *Local) Subscribe(routingKey string) (<-chan Envelope, func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, nil, ErrClosed
	}

	ch := make(chan Envelope, subscriberBuffer)
	l.subs[routingKey] = append(l.subs[routingKey], ch)

	var once sync.Once
	cancel := func() {
		once.Do(func() { l.unsubscribe(routingKey, ch) })
	}
	return ch, cancel, nil
}

func (l *Local) unsubscribe(routingKey string, ch chan Envelope) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	subs := l.subs[routingKey]
	for i, c := range subs {
		if c == ch {
			l.subs[routingKey] = append(subs[:i], subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes every subscriber channel. Further publishes fail with ErrClosed.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	for key, subs := range l.subs {
		for _, ch := range subs {
			close(ch)
		}
		delete(l.subs, key)
	}
	return nil
}
