package model

import "time"

// BookAssignment maps to book_assignments: one book lent to one user.
type BookAssignment struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookID     string    `gorm:"type:uuid;not null"                             json:"book_id"`
	UserID     string    `gorm:"type:uuid;not null"                             json:"user_id"`
	AssignedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"assigned_at"`
	Progress   int       `gorm:"not null;default:0"                             json:"progress"`
}

func (BookAssignment) TableName() string { return "book_assignments" }

// AssignmentDetail is an assignment joined with display columns.
// Only the columns selected by the query are set.
type AssignmentDetail struct {
	BookAssignment
	BookTitle           *string `json:"book_title,omitempty"`
	BookAuthor          *string `json:"book_author,omitempty"`
	BookCoverURL        *string `gorm:"column:book_cover_url" json:"book_cover_url,omitempty"`
	CurriculumComponent *string `json:"curriculum_component,omitempty"`
	UserName            *string `json:"user_name,omitempty"`
	UserEmail           *string `json:"user_email,omitempty"`
	UserRole            *string `json:"user_role,omitempty"`
}
