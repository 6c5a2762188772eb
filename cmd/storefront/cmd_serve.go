package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host the cart, chat widget and product form for a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger

	store := cart.NewStore(ctx, a.kv, cart.Options{
		Orders:   a.orderClient(),
		Notify:   httpapi.Notify,
		Navigate: httpapi.Navigate,
		Events:   a.bus,
		Logger:   logger,
	})
	handler := httpapi.NewHandler(store, a.chatSession(nil), a.submitter(), logger)

	probes := []clients.HealthProbe{
		{Name: "order-service", Client: clients.NewClient("order-service", a.cfg.OrdersURL, a.http), Path: "/health"},
		{Name: "product-service", Client: clients.NewClient("product-service", a.cfg.ProductsURL, a.http), Path: "/health"},
		{Name: "assistant", Client: clients.NewClient("assistant", a.cfg.AssistantURL, a.http), Path: "/health"},
	}

	srv := &http.Server{
		Addr: ":" + a.cfg.Port,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Logger:           logger,
			Handler:          handler,
			HealthProbes:     probes,
			CORSAllowOrigins: a.cfg.CORSAllowOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var (
		feeds   []<-chan events.Envelope
		cancels []func()
	)
	for _, key := range []string{events.ProductListRefreshRoutingKey, events.OrderPlacedRoutingKey} {
		ch, cancel, err := a.local.Subscribe(key)
		if err != nil {
			for _, c := range cancels {
				c()
			}
			return err
		}
		feeds = append(feeds, ch)
		cancels = append(cancels, cancel)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
			return err
		}
		logger.Info("shutdown complete")
		return nil
	})

	for i, ch := range feeds {
		cancel := cancels[i]
		g.Go(func() error {
			defer cancel()
			logPageEvents(ctx, logger, ch)
			return nil
		})
	}

	return g.Wait()
}

// logPageEvents reports page signals until ctx ends or the bus closes.
func logPageEvents(ctx context.Context, logger *zap.Logger, ch <-chan events.Envelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-ch:
			if !ok {
				return
			}
			logger.Info("page event",
				zap.String("event", env.EventName),
				zap.String("event_id", env.EventID),
				zap.String("correlation_id", env.CorrelationID))
		}
	}
}
