package http

import "github.com/gin-gonic/gin"

// Register attaches the read side of the menu to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

// RegisterAdmin attaches the mutating routes; the caller is expected to
// guard the group with the admin role middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
