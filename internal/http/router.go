package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

type Deps struct {
	Logger           *zap.Logger
	Handler          *Handler
	HealthProbes     []clients.HealthProbe
	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	logger := logging.OrNop(d.Logger)
	h := d.Handler
	health := &HealthHandler{Probes: d.HealthProbes}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(d.CORSAllowOrigins))

	r.Get("/health", h.Health)
	r.Get("/health/upstreams", health.Upstreams)

	r.Get("/cart", h.CartPage)
	r.Get("/cart.json", h.CartJSON)
	r.Post("/cart/items", h.AddItem)
	r.Post("/cart/items/{id}/remove", h.RemoveItem)
	r.Post("/cart/checkout", h.Checkout)

	r.Post("/chat/toggle", h.ToggleChat)
	r.Post("/chat/messages", h.SendChatMessage)

	r.Post("/products", h.CreateProduct)

	return r
}
