package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/products"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// app is what one CLI invocation (one "page load") works with.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	kv    storage.KV
	local *events.Local
	bus   events.Bus
	http  *http.Client

	out    io.Writer
	errOut io.Writer
}

// newRootCmd builds the command tree. The returned app must be closed after
// Execute, whatever its outcome.
func newRootCmd(in io.Reader, out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{out: out, errOut: errOut}
	var verbose bool

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client: cart, shopping assistant and product form",
		Long: `storefront drives the shop's client-side flows from a terminal.

The cart is kept in local storage (SQLite by default) and survives between
invocations. "storefront serve" hosts the same cart, chat widget and product
form for a browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			if verbose {
				a.cfg.LogLevel = "debug"
			}
			return a.open(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newCartCmd(a),
		newCheckoutCmd(a),
		newChatCmd(a),
		newProductCmd(a),
		newServeCmd(a),
	)
	return root, a
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(a.cfg.LogLevel, a.cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	kv, err := storage.Open(ctx, a.cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.kv = kv

	local, bus, err := events.Open(a.cfg.Events, logger)
	if err != nil {
		_ = kv.Close()
		return fmt.Errorf("open event bus: %w", err)
	}
	a.local, a.bus = local, bus

	a.http = clients.NewHTTPClient(a.cfg.UpstreamTimeout)
	return nil
}

func (a *app) close() {
	if a.bus != nil {
		_ = a.bus.Close()
		a.bus, a.local = nil, nil
	}
	if a.kv != nil {
		_ = a.kv.Close()
		a.kv = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) orderClient() *clients.OrderClient {
	return clients.NewOrderClient(clients.NewClient("order-service", a.cfg.OrdersURL, a.http))
}

func (a *app) productClient() *clients.ProductClient {
	return clients.NewProductClient(clients.NewClient("product-service", a.cfg.ProductsURL, a.http))
}

func (a *app) assistantClient() *clients.AssistantClient {
	return clients.NewAssistantClient(clients.NewClient("assistant", a.cfg.AssistantURL, a.http))
}

// notify prints blocking notifications on stderr.
func (a *app) notify(_ context.Context, n cart.Notification) {
	fmt.Fprintln(a.errOut, n.Message)
}

func (a *app) navigate(_ context.Context, path string) {
	fmt.Fprintf(a.out, "→ %s\n", path)
}

func (a *app) cartStore(ctx context.Context) *cart.Store {
	return cart.NewStore(ctx, a.kv, cart.Options{
		Orders:   a.orderClient(),
		Notify:   a.notify,
		Navigate: a.navigate,
		Events:   a.bus,
		Logger:   a.logger,
	})
}

func (a *app) chatSession(onAppend func(chat.Message)) *chat.Session {
	return chat.NewSession(a.assistantClient(), chat.Options{
		Logger:   a.logger,
		OnAppend: onAppend,
	})
}

func (a *app) submitter() *products.Submitter {
	return products.NewSubmitter(a.productClient(), a.bus, a.logger)
}
