package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/products"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/render"
)

type Handler struct {
	cart     *cart.Store
	chat     *chat.Session
	products *products.Submitter
	logger   *zap.Logger
}

func NewHandler(c *cart.Store, s *chat.Session, p *products.Submitter, logger *zap.Logger) *Handler {
	return &Handler{cart: c, chat: s, products: p, logger: logging.OrNop(logger)}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	h.writeCartHTML(w, r, h.cart.Render())
}

func (h *Handler) CartJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cart.Render())
}

type addItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type effectsResponse struct {
	Notifications []cart.Notification `json:"notifications"`
	Count         int                 `json:"count"`
	Redirect      string              `json:"redirect,omitempty"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	ctx, fx := withEffects(r.Context())
	if err := h.cart.AddItem(ctx, req.ID, req.Name, req.Price, req.Quantity); err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, effectsResponse{
		Notifications: fx.list(),
		Count:         h.cart.Count(),
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.cart.RemoveItem(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeCartHTML(w, r, view)
}

type checkoutRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	ctx, fx := withEffects(r.Context())
	err := h.cart.Checkout(ctx, req.Email)
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		writeError(w, r, http.StatusConflict, "cart is empty")
		return
	case err != nil:
		writeJSON(w, http.StatusUnprocessableEntity, effectsResponse{
			Notifications: fx.list(),
			Count:         h.cart.Count(),
		})
		return
	}

	writeJSON(w, http.StatusOK, effectsResponse{
		Notifications: fx.list(),
		Redirect:      fx.target(),
	})
}

type chatResponse struct {
	Visible    bool           `json:"visible"`
	SessionID  string         `json:"sessionId,omitempty"`
	Transcript []chat.Message `json:"transcript"`
}

func (h *Handler) chatState() chatResponse {
	return chatResponse{
		Visible:    h.chat.Visible(),
		SessionID:  h.chat.SessionID(),
		Transcript: h.chat.Transcript(),
	}
}

func (h *Handler) ToggleChat(w http.ResponseWriter, r *http.Request) {
	h.chat.Open(r.Context())
	writeJSON(w, http.StatusOK, h.chatState())
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	h.chat.Send(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, h.chatState())
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form products.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad request")
		return
	}

	if err := h.products.Submit(r.Context(), &form); err != nil {
		logging.WithCtx(r.Context(), h.logger).Warn("create product failed", zap.Error(err))
		status := http.StatusBadGateway
		if se, ok := clients.IsStatus(err); ok {
			status = se.StatusCode
		}
		writeError(w, r, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *Handler) writeCartHTML(w http.ResponseWriter, r *http.Request, v cart.View) {
	out, err := render.CartHTML(v)
	if err != nil {
		logging.WithCtx(r.Context(), h.logger).Error("render cart failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}
