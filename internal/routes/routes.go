package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pacifichome/smarthome-admin/internal/handlers"
	"github.com/pacifichome/smarthome-admin/internal/middleware"
)

// corsMiddleware allows the admin panel frontend to call the API from any
// origin during development.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SetupRouter wires every endpoint to its handler and mounts the upload
// directories for direct serving.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())

	router.Static("/images", h.Cfg.ImageDir)
	router.Static("/videos", h.Cfg.VideoDir)

	v1 := router.Group("/v1")
	{
		v1.POST("/login", h.Login)

		v1.POST("/categories", h.CreateCategory)
		v1.GET("/categories", h.GetCategoryTree)
		v1.POST("/categories/update", h.RenameCategory)
		v1.POST("/categories/delete", h.DeleteCategory)

		v1.POST("/products", h.CreateProduct)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.POST("/products/list", h.ListProducts)
		v1.POST("/products/update", h.UpdateProduct)
		v1.POST("/products/delete", h.DeleteProduct)
		v1.DELETE("/products/:id", h.DeleteProductByID)

		v1.GET("/videos", h.GetVideos)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.Tokens))
		{
			admin.GET("/dashboard-stats", h.GetDashboardStats)
			admin.GET("/contacts/unresolved", h.GetUnresolvedContacts)
			admin.POST("/contacts/resolve", h.UpdateContactStatus)

			admin.POST("/videos", h.SaveVideo)
			admin.POST("/videos/update", h.UpdateVideo)
			admin.POST("/videos/delete", h.DeleteVideo)
		}
	}

	return router
}
