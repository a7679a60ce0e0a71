package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apimiddleware "github.com/punto-pos/pos-backend/internal/api/http/middleware"
	authctx "github.com/punto-pos/pos-backend/internal/auth"
	"github.com/punto-pos/pos-backend/internal/logging"
	"github.com/punto-pos/pos-backend/internal/orders/domain"
	"github.com/punto-pos/pos-backend/internal/orders/events"
	"github.com/punto-pos/pos-backend/internal/orders/service"
)

type Handler struct {
	orderService *service.OrderService
	events       *events.Publisher
	log          *logging.Logger
}

func New(orderService *service.OrderService, events *events.Publisher, log *logging.Logger) *Handler {
	return &Handler{orderService: orderService, events: events, log: log}
}

func (h *Handler) create(c *gin.Context) {
	clientID := authctx.UserFirebaseUID(c)
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &service.CreateRequest{
		ClientID:    clientID,
		Lines:       req.lines(),
		Table:       req.Table,
		Allergies:   req.Allergies,
		ClientTotal: req.Total,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTotalMismatch) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "total does not match menu prices"})
			return
		}
		h.log.ErrorReq("order_create", "order create failed", apimiddleware.RequestID(c), map[string]any{"client": clientID}, err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order})
}

func (h *Handler) list(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.log.ErrorReq("order_list", "order list failed", apimiddleware.RequestID(c), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": orders})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order, "payable": order.State.Payable()})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	fields := map[string]any{}
	if req.Table != nil {
		fields["table"] = *req.Table
	}
	if req.Allergies != nil {
		fields["allergies"] = *req.Allergies
	}

	order, err := h.orderService.Update(c.Request.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "state changes must use the state endpoint"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
}

func (h *Handler) transition(c *gin.Context) {
	id := c.Param("id")

	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.State == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), id, domain.Status(req.State))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid order state"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "illegal state transition"})
		default:
			h.log.ErrorReq("order_transition", "state transition failed", apimiddleware.RequestID(c), map[string]any{"id": id, "state": req.State}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order, "payable": order.State.Payable()})
}

func (h *Handler) pay(c *gin.Context) {
	id := c.Param("id")

	order, err := h.orderService.Pay(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "order is not payable until entregado"})
		default:
			h.log.ErrorReq("order_pay", "payment failed", apimiddleware.RequestID(c), map[string]any{"id": id}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.log.ErrorReq("order_delete", "order delete failed", apimiddleware.RequestID(c), map[string]any{"id": id}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
