package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/speedparts/storefront/internal/application/shop"
	"github.com/speedparts/storefront/internal/domain/catalog"
)

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	BaseHandler
	session *shop.Session
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(session *shop.Session) *CatalogHandler {
	return &CatalogHandler{session: session}
}

// ListProductsRequest represents catalog filter query parameters
type ListProductsRequest struct {
	Search    string `form:"search"`
	Make      string `form:"make"`
	Model     string `form:"model"`
	Year      string `form:"year"`
	Category  string `form:"category"`
	Condition string `form:"condition" binding:"omitempty,oneof=new used refurbished"`
}

// List returns the catalog filtered by the request's selectors
func (h *CatalogHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	products := h.session.Query(catalog.FilterQuery{
		Search:    req.Search,
		Make:      req.Make,
		Model:     req.Model,
		Year:      req.Year,
		Category:  req.Category,
		Condition: req.Condition,
	})

	h.Success(c, products)
}

// GetByID returns a single product with its availability state
func (h *CatalogHandler) GetByID(c *gin.Context) {
	view, err := h.session.Product(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Facets returns the distinct filterable values of the loaded catalog
func (h *CatalogHandler) Facets(c *gin.Context) {
	h.Success(c, h.session.Facets())
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog")
	{
		products.GET("/products", h.List)
		products.GET("/products/:id", h.GetByID)
		products.GET("/facets", h.Facets)
	}
}
