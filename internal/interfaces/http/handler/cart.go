package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/speedparts/storefront/internal/application/shop"
	"github.com/speedparts/storefront/internal/interfaces/http/dto"
	"github.com/speedparts/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart state endpoints
type CartHandler struct {
	BaseHandler
	session *shop.Session
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(session *shop.Session) *CartHandler {
	return &CartHandler{session: session}
}

// AddItemRequest represents a request to add one unit of a product
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// SetQuantityRequest represents a request to set a cart line quantity.
// Zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.session.CartView())
}

// AddItem adds one unit of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.session.AddToCart(c.Request.Context(), req.ProductID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.session.CartView())
}

// SetQuantity sets the quantity of a cart line, clamping to stock.
// The response meta reports whether the requested quantity was clamped.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	clamped, err := h.session.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if clamped {
		h.SuccessWithMeta(c, h.session.CartView(), dto.Meta{Clamped: true})
		return
	}
	h.Success(c, h.session.CartView())
}

// RemoveItem removes a cart line. Removing an absent line is a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.session.RemoveFromCart(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.session.CartView())
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.session.ClearCart(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.session.CartView())
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.SetQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}
