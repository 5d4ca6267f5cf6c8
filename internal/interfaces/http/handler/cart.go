package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/ebookstore/backend/internal/application/cart"
	"github.com/ebookstore/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the session-scoped shopping cart endpoints
type CartHandler struct {
	BaseHandler
	carts *cartapp.Service
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *cartapp.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemRequest struct {
	BookID   string `json:"book_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart item payload: "+err.Error())
		return
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), middleware.GetSessionID(c), bookID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem handles PUT /api/v1/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	bookID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity payload: "+err.Error())
		return
	}

	cart, err := h.carts.SetQuantity(c.Request.Context(), middleware.GetSessionID(c), bookID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
