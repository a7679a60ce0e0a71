package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authctx "github.com/punto-pos/pos-backend/internal/auth"
	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

type staticRoleLookup struct {
	users map[string]*domain.User
}

func (s *staticRoleLookup) GetByUID(_ context.Context, uid string) (*domain.User, error) {
	user, ok := s.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func runRequireRole(t *testing.T, uid string, lookup *staticRoleLookup, allowed ...domain.Role) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if uid != "" {
		c.Set(authctx.CtxFirebaseUID, uid)
	}

	RequireRole(lookup, allowed...)(c)
	return c, rr
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	lookup := &staticRoleLookup{users: map[string]*domain.User{
		"uid-1": {UID: "uid-1", Role: domain.RoleChef},
	}}

	c, _ := runRequireRole(t, "uid-1", lookup, domain.RoleChef, domain.RoleAdmin)

	require.False(t, c.IsAborted())
	assert.Equal(t, domain.RoleChef, authctx.UserRole(c))
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	lookup := &staticRoleLookup{users: map[string]*domain.User{
		"uid-1": {UID: "uid-1", Role: domain.RoleClient},
	}}

	c, rr := runRequireRole(t, "uid-1", lookup, domain.RoleChef, domain.RoleCashier)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoleRejectsUnknownUser(t *testing.T) {
	c, rr := runRequireRole(t, "ghost", &staticRoleLookup{users: map[string]*domain.User{}}, domain.RoleAdmin)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoleRejectsUnauthenticated(t *testing.T) {
	c, rr := runRequireRole(t, "", &staticRoleLookup{users: map[string]*domain.User{}}, domain.RoleAdmin)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
