package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// ═══════════════════════════════════════════════════════════
// Curriculum components
// ═══════════════════════════════════════════════════════════

// CurriculumComponentHandler curriculum component endpoints.
type CurriculumComponentHandler struct {
	componentSvc service.CurriculumComponentService
	resp         *Responder
}

// NewCurriculumComponentHandler creates a CurriculumComponentHandler.
func NewCurriculumComponentHandler(componentSvc service.CurriculumComponentService, resp *Responder) *CurriculumComponentHandler {
	return &CurriculumComponentHandler{componentSvc: componentSvc, resp: resp}
}

// List GET /api/curriculum-components
func (h *CurriculumComponentHandler) List(c *gin.Context) {
	items, err := h.componentSvc.List(c.Request.Context())
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, items)
}

// Get GET /api/curriculum-components/:id
func (h *CurriculumComponentHandler) Get(c *gin.Context) {
	item, err := h.componentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, item)
}

// Create POST /api/curriculum-components
func (h *CurriculumComponentHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	item, err := h.componentSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Created(c, item)
}

// Update PUT /api/curriculum-components/:id
func (h *CurriculumComponentHandler) Update(c *gin.Context) {
	var req dto.NameRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	item, err := h.componentSvc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, item)
}

// Delete DELETE /api/curriculum-components/:id
func (h *CurriculumComponentHandler) Delete(c *gin.Context) {
	if err := h.componentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Componente curricular excluído com sucesso")
}

// ═══════════════════════════════════════════════════════════
// Series
// ═══════════════════════════════════════════════════════════

// SeriesHandler school year endpoints.
type SeriesHandler struct {
	seriesSvc service.SeriesService
	resp      *Responder
}

// NewSeriesHandler creates a SeriesHandler.
func NewSeriesHandler(seriesSvc service.SeriesService, resp *Responder) *SeriesHandler {
	return &SeriesHandler{seriesSvc: seriesSvc, resp: resp}
}

// List GET /api/series
func (h *SeriesHandler) List(c *gin.Context) {
	items, err := h.seriesSvc.List(c.Request.Context())
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, items)
}

// Get GET /api/series/:id
func (h *SeriesHandler) Get(c *gin.Context) {
	item, err := h.seriesSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, item)
}

// Create POST /api/series
func (h *SeriesHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	item, err := h.seriesSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Created(c, item)
}

// Update PUT /api/series/:id
func (h *SeriesHandler) Update(c *gin.Context) {
	var req dto.NameRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	item, err := h.seriesSvc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, item)
}

// Delete DELETE /api/series/:id
func (h *SeriesHandler) Delete(c *gin.Context) {
	if err := h.seriesSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Série excluída com sucesso")
}
