package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats handles GET /v1/admin/dashboard-stats.
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats, err := h.Store.DashboardStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUnresolvedContacts handles GET /v1/admin/contacts/unresolved.
func (h *Handlers) GetUnresolvedContacts(c *gin.Context) {
	contacts, err := h.Store.UnresolvedContacts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// UpdateContactStatus handles POST /v1/admin/contacts/resolve. Resolving an
// already-resolved order reports success false without an error.
func (h *Handlers) UpdateContactStatus(c *gin.Context) {
	var input struct {
		OrderID int64 `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.OrderID <= 0 {
		failValidation(c, "Invalid or missing order_id")
		return
	}

	changed, err := h.Store.MarkContacted(c.Request.Context(), input.OrderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": changed})
}
