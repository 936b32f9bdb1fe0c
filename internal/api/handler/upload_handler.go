package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

// UploadHandler multipart file uploads.
type UploadHandler struct {
	uploadSvc service.UploadService
	resp      *Responder
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploadSvc service.UploadService, resp *Responder) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, resp: resp}
}

// UploadPDF POST /api/upload/pdf (form field "pdf")
func (h *UploadHandler) UploadPDF(c *gin.Context) {
	h.upload(c, storage.KindPDF, "pdf")
}

// UploadImage POST /api/upload/image (form field "image")
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.upload(c, storage.KindImage, "image")
}

func (h *UploadHandler) upload(c *gin.Context, kind storage.Kind, field string) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.resp.Fail(c, service.ErrFileTooLarge)
			return
		}
		h.resp.Fail(c, service.ErrNoFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	defer f.Close()

	result, err := h.uploadSvc.Upload(c.Request.Context(), kind, &service.UploadFile{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OK(c, result)
}
