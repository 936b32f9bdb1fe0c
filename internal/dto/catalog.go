package dto

// NameRequest body for curriculum component and series create/update.
type NameRequest struct {
	Name string `json:"name" binding:"max=255"`
}
