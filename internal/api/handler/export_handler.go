package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler spreadsheet downloads.
type ExportHandler struct {
	exportSvc service.ExportService
	resp      *Responder
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService, resp *Responder) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, resp: resp}
}

// ExportAssignments downloads assignment progress as .xlsx.
// GET /api/assignments/export?book_id=&user_id=
func (h *ExportHandler) ExportAssignments(c *gin.Context) {
	var req dto.AssignmentExportRequest
	if err := bindQuery(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
