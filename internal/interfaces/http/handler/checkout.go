package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/speedparts/storefront/internal/application/shop"
	"github.com/speedparts/storefront/internal/domain/order"
	"github.com/speedparts/storefront/internal/infrastructure/dispatch"
	"github.com/speedparts/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles order submission and contact endpoints
type CheckoutHandler struct {
	BaseHandler
	session     *shop.Session
	sellerPhone string
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(session *shop.Session, sellerPhone string) *CheckoutHandler {
	return &CheckoutHandler{session: session, sellerPhone: sellerPhone}
}

// CheckoutRequest represents the customer details submitted at checkout.
// Field-level validation mirrors order assembly so that malformed input
// is reported per field either way.
type CheckoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required,phone"`
	Method  string `json:"delivery_method" binding:"required,oneof=pickup shipping"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ContactLinkResponse carries the deep link for a general seller enquiry
type ContactLinkResponse struct {
	WhatsAppLink string `json:"whatsapp_link"`
}

// Checkout assembles the cart into an order and dispatches it.
// The cart is cleared once dispatch has run, whatever the channel outcome.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.session.Checkout(c.Request.Context(), order.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Method:  req.Method,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ContactLink returns the WhatsApp deep link for contacting the seller
// outside of an order
func (h *CheckoutHandler) ContactLink(c *gin.Context) {
	h.Success(c, ContactLinkResponse{
		WhatsAppLink: dispatch.ContactLink(h.sellerPhone),
	})
}

// RegisterRoutes registers checkout and contact routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
	rg.GET("/contact-link", h.ContactLink)
}
