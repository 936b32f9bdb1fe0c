package dto

import "github.com/maximiza-sistemas/edu-backend/internal/model"

// ── users ──

// UserListRequest query parameters for GET /users.
type UserListRequest struct {
	PaginationRequest
	Role        string `form:"role"         binding:"omitempty,role"`
	ProfessorID string `form:"professor_id" binding:"omitempty,uuid"`
	ClassGroup  string `form:"class_group"  binding:"omitempty,max=100"`
}

// CreateUserRequest body for POST /users.
type CreateUserRequest struct {
	Name        string     `json:"name"         binding:"max=255"`
	Email       string     `json:"email"        binding:"max=255"`
	Password    string     `json:"password"`
	Role        model.Role `json:"role"`
	ProfessorID *string    `json:"professor_id"`
	ClassGroup  *string    `json:"class_group"  binding:"omitempty,max=100"`
}

// UpdateUserRequest partial patch for PUT /users/:id. Absent fields are left unchanged;
// an empty professor_id or class_group clears the column.
type UpdateUserRequest struct {
	Name        *string     `json:"name"         binding:"omitempty,max=255"`
	Email       *string     `json:"email"        binding:"omitempty,max=255"`
	Password    *string     `json:"password"`
	Role        *model.Role `json:"role"`
	Avatar      *string     `json:"avatar"`
	ProfessorID *string     `json:"professor_id"`
	ClassGroup  *string     `json:"class_group"  binding:"omitempty,max=100"`
}

// IsEmpty reports whether no recognized field was supplied.
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil &&
		r.Avatar == nil && r.ProfessorID == nil && r.ClassGroup == nil
}
