package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// BookHandler book catalogue endpoints.
type BookHandler struct {
	bookSvc service.BookService
	resp    *Responder
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(bookSvc service.BookService, resp *Responder) *BookHandler {
	return &BookHandler{bookSvc: bookSvc, resp: resp}
}

// List GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	var req dto.BookListRequest
	if err := bindQuery(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	books, total, err := h.bookSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OKPage(c, books, total, req.GetLimit(), req.GetOffset())
}

// Get GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.bookSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, book)
}

// Create POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	book, err := h.bookSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.Created(c, book)
}

// Update PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	book, err := h.bookSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OK(c, book)
}

// Delete DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.bookSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Livro deletado com sucesso")
}

// ListForStudent GET /api/books/student/:userId
func (h *BookHandler) ListForStudent(c *gin.Context) {
	books, err := h.bookSvc.ListForStudent(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, books)
}

// ListByComponent GET /api/books/component/:component
func (h *BookHandler) ListByComponent(c *gin.Context) {
	books, err := h.bookSvc.ListByComponent(c.Request.Context(), c.Param("component"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, books)
}

// ListByClass GET /api/books/class/:classGroup
func (h *BookHandler) ListByClass(c *gin.Context) {
	books, err := h.bookSvc.ListByClass(c.Request.Context(), c.Param("classGroup"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, books)
}
