package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mirastore/catalog_api/internal/service"
	"github.com/mirastore/catalog_api/internal/utils"
)

// StorefrontHandler serves the public product-display endpoints.
type StorefrontHandler struct {
	storefrontService *service.StorefrontService
}

// NewStorefrontHandler constructs a StorefrontHandler.
func NewStorefrontHandler(storefrontService *service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// ListProducts handles GET /v1/storefront/products
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}

	listing, err := h.storefrontService.ListProducts(c.Request.Context(), c.Query("search"), c.Query("category"), page)
	if err != nil {
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", "Catalog is temporarily unavailable")
		return
	}

	utils.SuccessWithPage(c, 200, "Products retrieved", listing.Products, listing.Page)
}

// GetProduct handles GET /v1/storefront/products/:id
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	detail, err := h.storefrontService.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", "Catalog is temporarily unavailable")
		return
	}

	utils.Success(c, 200, "Product retrieved", detail)
}

// ListCategories handles GET /v1/storefront/categories
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.storefrontService.ListCategories(c.Request.Context())
	if err != nil {
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", "Catalog is temporarily unavailable")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}
