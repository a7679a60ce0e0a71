package http

import "github.com/gin-gonic/gin"

// Register attaches the public auth routes to the given router group.
// signout and me require the auth middleware and are registered separately.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", h.signUp)
	rg.POST("/signin", h.signIn)
}

// RegisterProtected attaches routes that need a verified ID token.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/signout", h.signOut)
	rg.GET("/me", h.me)
}
