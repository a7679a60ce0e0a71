package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apimiddleware "github.com/punto-pos/pos-backend/internal/api/http/middleware"
	"github.com/punto-pos/pos-backend/internal/logging"
	"github.com/punto-pos/pos-backend/internal/menu/domain"
	"github.com/punto-pos/pos-backend/internal/menu/service"
)

type Handler struct {
	menuService *service.MenuService
	log         *logging.Logger
}

func New(menuService *service.MenuService, log *logging.Logger) *Handler {
	return &Handler{menuService: menuService, log: log}
}

func (h *Handler) list(c *gin.Context) {
	var category domain.Category
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		parsed, err := domain.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
			return
		}
		category = parsed
	}

	items, err := h.menuService.List(c.Request.Context(), category)
	if err != nil {
		h.log.ErrorReq("menu_list", "menu fetch failed", apimiddleware.RequestID(c), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "menu": items})
}

func (h *Handler) create(c *gin.Context) {
	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	item := &domain.MenuItem{
		Dish:        strings.TrimSpace(req.Dish),
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.Category(req.Type),
		ImagePath:   req.URL,
	}

	if err := h.menuService.Create(c.Request.Context(), item); err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
			return
		}
		h.log.ErrorReq("menu_create", "menu item create failed", apimiddleware.RequestID(c), map[string]any{"dish": req.Dish}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": item})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	fields := map[string]any{}
	if req.Dish != nil {
		fields["dish"] = strings.TrimSpace(*req.Dish)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.URL != nil {
		fields["url"] = *req.URL
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no fields to update"})
		return
	}

	if err := h.menuService.Update(c.Request.Context(), id, fields); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "menu item not found"})
		case errors.Is(err, domain.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
		default:
			h.log.ErrorReq("menu_update", "menu item update failed", apimiddleware.RequestID(c), map[string]any{"id": id}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		h.log.ErrorReq("menu_delete", "menu item delete failed", apimiddleware.RequestID(c), map[string]any{"id": id}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
