package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ebookstore/backend/internal/application/catalog"
	"github.com/ebookstore/backend/internal/domain/shared"
	"github.com/ebookstore/backend/internal/interfaces/http/dto"
)

// BookHandler serves catalog browsing and administration endpoints
type BookHandler struct {
	BaseHandler
	books *catalogapp.BookService
}

// NewBookHandler creates a book handler
func NewBookHandler(books *catalogapp.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// List handles GET /api/v1/books
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{"category": req.Category},
	}

	result, err := h.books.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// Create handles POST /api/v1/admin/books
func (h *BookHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid book payload: "+err.Error())
		return
	}

	book, err := h.books.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, book)
}

// Update handles PUT /api/v1/admin/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid book payload: "+err.Error())
		return
	}

	book, err := h.books.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// Delete handles DELETE /api/v1/admin/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadCover handles POST /api/v1/admin/books/:id/cover
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("cover")
	if err != nil {
		h.BadRequest(c, "Cover image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	book, err := h.books.UploadCover(c.Request.Context(), id, contentType, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// AddFeedback handles POST /api/v1/books/:id/feedback
func (h *BookHandler) AddFeedback(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req catalogapp.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid feedback payload: "+err.Error())
		return
	}

	feedback, err := h.books.AddFeedback(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, feedback)
}
