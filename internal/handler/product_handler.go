package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mirastore/catalog_api/internal/service"
	"github.com/mirastore/catalog_api/internal/utils"
)

// ProductHandler handles admin product CRUD HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /v1/admin/products
// A changed filter implies a fresh listing: the page parameter defaults to 1
// whenever absent, so clients reset to the first page on filter change.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}

	products, resolved, err := h.productService.List(c.Request.Context(), c.Query("search"), c.Query("category"), page)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.SuccessWithPage(c, 200, "Products retrieved", products, resolved)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "Failed to update product")
		return
	}

	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
// Deletion is two-step: the first call records a pending selection and
// returns a confirmation token with status 409; repeating the call with
// ?confirm=<token> performs the delete.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	confirm := c.Query("confirm")
	if confirm == "" {
		token, err := h.productService.RequestDelete(c.Request.Context(), id)
		if err != nil {
			h.writeError(c, err, "Failed to prepare delete")
			return
		}
		c.JSON(409, gin.H{
			"success":      false,
			"code":         409,
			"message":      "Confirmation required",
			"confirmToken": token,
		})
		return
	}

	if err := h.productService.ConfirmDelete(c.Request.Context(), id, confirm); err != nil {
		h.writeError(c, err, "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted successfully", nil)
}

func (h *ProductHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrInvalidPrice):
		utils.Error(c, 400, "INVALID_PRICE", "Price must be a non-negative number")
	case errors.Is(err, utils.ErrInvalidStock):
		utils.Error(c, 400, "INVALID_STOCK", "Stock must be a non-negative integer")
	case errors.Is(err, utils.ErrInvalidConfirm):
		utils.Error(c, 400, "INVALID_CONFIRM_TOKEN", "Missing or expired delete confirmation")
	case errors.Is(err, utils.ErrStorageQuota):
		utils.Error(c, 507, "STORAGE_FULL", "Local storage quota exceeded, write abandoned")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
