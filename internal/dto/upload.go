package dto

// UploadResponse answers a successful upload. Exactly one URL field is set.
type UploadResponse struct {
	Message      string `json:"message"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	PdfURL       string `json:"pdfUrl,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}
