package events

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
)

// Open returns the in-process bus, teed to RabbitMQ when configured. The
// local bus is always returned so hosts can subscribe to it.
func Open(cfg config.EventsConfig, logger *zap.Logger) (*Local, Bus, error) {
	local := NewLocal(logger)

	switch cfg.Driver {
	case "", "local":
		return local, local, nil
	case "rabbitmq":
		pub, err := DialRabbit(cfg.RabbitMQURL, logger)
		if err != nil {
			_ = local.Close()
			return nil, nil, err
		}
		return local, Tee(local, pub), nil
	default:
		_ = local.Close()
		return nil, nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
