package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pacifichome/smarthome-admin/internal/models"
	"github.com/pacifichome/smarthome-admin/internal/store"
)

// Login handles POST /v1/login. A missing user and a wrong password produce
// the same response so usernames cannot be probed.
func (h *Handlers) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failValidation(c, "Username and password are required")
		return
	}

	user, err := h.Store.UserByUsername(c.Request.Context(), input.Username)
	if err != nil {
		var notFound store.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
			return
		}
		fail(c, err)
		return
	}

	pw := models.Password{Hash: user.PasswordHash}
	match, err := pw.Matches(input.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
