package transport

import (
	"net/http"

	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddToCartRequest adds quantity units of a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

// AddToCartResponse reports the cart line after the add
type AddToCartResponse struct {
	Message  string `json:"message"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,max=50"`
}

// CheckoutResponse summarises a placed order
type CheckoutResponse struct {
	Message     string  `json:"message"`
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

// CartHandler serves the cart, checkout and order history
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes mounts cart, checkout and order routes behind authentication
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/cart", h.GetCart)
		r.Post("/api/cart", h.AddItem)
		r.Delete("/api/cart/{itemId}", h.RemoveItem)
		r.Post("/api/checkout", h.Checkout)
		r.Get("/api/orders", h.ListOrders)
	})
}

// GetCart lists the caller's cart lines
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	lines, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartLineResponses(lines))
}

// AddItem puts a product in the cart, or bumps its quantity
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	item, err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to add to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, AddToCartResponse{
		Message:  "Added to cart",
		ItemID:   item.ID.String(),
		Quantity: item.Quantity,
	})
}

// RemoveItem deletes one of the caller's cart lines
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId", repository.ErrCartItemNotFound)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), userID, itemID); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to remove cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Removed from cart"})
}

// Checkout turns the caller's cart into an order
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	order, err := h.cartService.Checkout(r.Context(), userID, req.PaymentMethod)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to checkout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Message:     "Order placed successfully",
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount,
	})
}

// ListOrders returns the caller's orders, newest first
func (h *CartHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.cartService.ListOrders(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toOrderResponses(orders))
}
