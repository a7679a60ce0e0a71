package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/punto-pos/pos-backend/internal/auth"
	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

type roleLookup interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
}

// RequireRole loads the caller's user document and aborts unless its role is
// one of the allowed roles. Must run after FirebaseAuthMiddleware.
func RequireRole(users roleLookup, allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := authctx.UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := users.GetByUID(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "unknown user"})
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Set(authctx.CtxUserRole, string(user.Role))
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "insufficient role"})
		c.Abort()
	}
}
