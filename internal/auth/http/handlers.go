package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apimiddleware "github.com/punto-pos/pos-backend/internal/api/http/middleware"
	authctx "github.com/punto-pos/pos-backend/internal/auth"
	"github.com/punto-pos/pos-backend/internal/auth/domain"
	"github.com/punto-pos/pos-backend/internal/auth/service"
	"github.com/punto-pos/pos-backend/internal/logging"
)

type Handler struct {
	authService *service.AuthService
	log         *logging.Logger
}

func New(authService *service.AuthService, log *logging.Logger) *Handler {
	return &Handler{authService: authService, log: log}
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Name, req.Role, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "email already registered"})
		case errors.Is(err, domain.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid role"})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "password too weak"})
		default:
			h.log.ErrorReq("signup", "sign-up failed", apimiddleware.RequestID(c), map[string]any{"email": req.Email}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "sign-up failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": user, "redirect": user.Role.RedirectPath()})
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "account not found"})
		case errors.Is(err, domain.ErrWrongCredential):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "wrong email or password"})
		default:
			h.log.ErrorReq("signin", "sign-in failed", apimiddleware.RequestID(c), map[string]any{"email": req.Email}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "sign-in failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"user":          result.User,
		"id_token":      result.IDToken,
		"refresh_token": result.RefreshToken,
		"redirect":      result.Redirect,
	})
}

func (h *Handler) signOut(c *gin.Context) {
	uid := authctx.UserFirebaseUID(c)
	if err := h.authService.SignOut(c.Request.Context(), uid); err != nil {
		h.log.ErrorReq("signout", "sign-out failed", apimiddleware.RequestID(c), map[string]any{"uid": uid}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "sign-out failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) me(c *gin.Context) {
	uid := authctx.UserFirebaseUID(c)
	user, err := h.authService.GetUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user, "redirect": user.Role.RedirectPath()})
}
