package http

import "github.com/gin-gonic/gin"

// Register attaches order routes shared by every authenticated role.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/latest/stream", h.StreamLatestOrder)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// RegisterStaff attaches the lifecycle routes; the caller guards the group
// with the chef/cashier/admin role middleware.
func (h *Handler) RegisterStaff(rg *gin.RouterGroup) {
	rg.POST("/:id/state", h.transition)
	rg.POST("/:id/pay", h.pay)
}
