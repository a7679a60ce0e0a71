package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserRole    = "user_role"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by FirebaseAuthMiddleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserRole extracts the resolved role from the Gin context.
// This is set by RequireRole.
func UserRole(c *gin.Context) domain.Role {
	return domain.Role(c.GetString(CtxUserRole))
}
