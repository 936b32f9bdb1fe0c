package dto

// ── assignments ──

// AssignmentListRequest query parameters for GET /assignments.
type AssignmentListRequest struct {
	PaginationRequest
	BookID string `form:"book_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// AssignmentExportRequest query parameters for GET /assignments/export.
type AssignmentExportRequest struct {
	BookID string `form:"book_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// CreateAssignmentRequest body for POST /assignments.
type CreateAssignmentRequest struct {
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
}

// UpdateProgressRequest body for progress updates.
type UpdateProgressRequest struct {
	Progress *int `json:"progress"`
}
