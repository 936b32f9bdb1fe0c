package dto

// ── pagination ──

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// PaginationRequest limit/offset query parameters.
type PaginationRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// GetLimit defaults non-positive values to 50 and caps at 100.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	if p.Limit > MaxLimit {
		return MaxLimit
	}
	return p.Limit
}

// GetOffset clamps negative values to 0.
func (p *PaginationRequest) GetOffset() int {
	if p.Offset < 0 {
		return 0
	}
	return p.Offset
}

// ── health ──

// HealthResponse liveness and database probe.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}
