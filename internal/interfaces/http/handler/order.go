package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/ebookstore/backend/internal/application/cart"
	orderapp "github.com/ebookstore/backend/internal/application/order"
	"github.com/ebookstore/backend/internal/domain/order"
	"github.com/ebookstore/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves the order workflow endpoints: checkout, listing,
// cancel and reorder
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
	carts  *cartapp.Service
	logger *zap.Logger
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *orderapp.Service, carts *cartapp.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		carts:  carts,
		logger: logger,
	}
}

// Checkout handles POST /api/v1/orders. It turns the session's cart into
// an order and clears the cart on success.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	sessionID := middleware.GetSessionID(c)
	entries, err := h.carts.Entries(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	placed, err := h.orders.Place(c.Request.Context(), userID, entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Cart removal is best-effort: the order is already committed
	if err := h.carts.Clear(c.Request.Context(), sessionID); err != nil {
		h.logger.Warn("clear cart after checkout failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	h.Created(c, placed)
}

// List handles GET /api/v1/orders, returning the caller's orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	details, err := h.orders.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// Cancel handles POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	canceled, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, canceled)
}

// Reorder handles POST /api/v1/orders/:id/reorder
func (h *OrderHandler) Reorder(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	reordered, err := h.orders.Reorder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reordered)
}

// ListAll handles GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ChangeStatus handles PUT /api/v1/admin/orders/:id/status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status payload: "+err.Error())
		return
	}

	updated, err := h.orders.ChangeStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}
