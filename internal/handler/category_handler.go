package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mirastore/catalog_api/internal/service"
	"github.com/mirastore/catalog_api/internal/utils"
)

// CategoryHandler handles admin category CRUD HTTP endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /v1/admin/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// GetCategory handles GET /v1/admin/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to retrieve category")
		return
	}

	utils.Success(c, 200, "Category retrieved", category)
}

// CreateCategory handles POST /v1/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "Failed to create category")
		return
	}

	utils.Success(c, 201, "Category created successfully", category)
}

// UpdateCategory handles PUT /v1/admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "Failed to update category")
		return
	}

	utils.Success(c, 200, "Category updated successfully", category)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id with the same
// two-step confirmation flow as products.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	confirm := c.Query("confirm")
	if confirm == "" {
		token, err := h.categoryService.RequestDelete(c.Request.Context(), id)
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

	if err := h.categoryService.ConfirmDelete(c.Request.Context(), id, confirm); err != nil {
		h.writeError(c, err, "Failed to delete category")
		return
	}

	utils.Success(c, 200, "Category deleted successfully", nil)
}

func (h *CategoryHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrCategoryNotFound):
		utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, utils.ErrDuplicateName):
		utils.Error(c, 409, "DUPLICATE_NAME", "A category with this name already exists")
	case errors.Is(err, utils.ErrInvalidConfirm):
		utils.Error(c, 400, "INVALID_CONFIRM_TOKEN", "Missing or expired delete confirmation")
	case errors.Is(err, utils.ErrStorageQuota):
		utils.Error(c, 507, "STORAGE_FULL", "Local storage quota exceeded, write abandoned")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
