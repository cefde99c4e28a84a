package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

// CreateCategory handles POST /v1/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, "Category name is required.")
		return
	}

	name := strings.TrimSpace(input.Name)
	id, err := h.Store.CreateCategory(c.Request.Context(), name, input.ParentID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, fmt.Sprintf("Category '%s' added successfully.", name), gin.H{"id": id})
}

// RenameCategory handles POST /v1/categories/update.
func (h *Handlers) RenameCategory(c *gin.Context) {
	var input models.RenameCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, "Invalid input. ID and name are required.")
		return
	}

	if err := h.Store.RenameCategory(c.Request.Context(), input.ID, input.Name); err != nil {
		fail(c, err)
		return
	}

	ok(c, "Category updated successfully.", nil)
}

// DeleteCategory handles POST /v1/categories/delete. Deletion is refused
// while the category has subcategories or product assignments.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	var input models.DeleteCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, "Invalid category ID")
		return
	}

	if err := h.Store.DeleteCategory(c.Request.Context(), input.ID); err != nil {
		fail(c, err)
		return
	}

	ok(c, "Category deleted successfully.", gin.H{"category_id": input.ID})
}

// GetCategoryTree handles GET /v1/categories. The response is the bare
// nested forest, not wrapped in an envelope.
func (h *Handlers) GetCategoryTree(c *gin.Context) {
	tree, err := h.Store.CategoryTree(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}
