package dto

import "github.com/maximiza-sistemas/edu-backend/internal/model"

// ── books ──

// BookListRequest query parameters for GET /books.
type BookListRequest struct {
	PaginationRequest
	Search              string `form:"search"               binding:"omitempty,max=255"`
	CurriculumComponent string `form:"curriculum_component"`
	ClassGroup          string `form:"class_group"`
	ProfessorID         string `form:"professor_id"         binding:"omitempty,uuid"`
	StudentID           string `form:"student_id"           binding:"omitempty,uuid"`
	BookType            string `form:"book_type"            binding:"omitempty,booktype|eq=all"`
}

// CreateBookRequest body for POST /books.
type CreateBookRequest struct {
	Title               string          `json:"title"                binding:"max=255"`
	Author              string          `json:"author"               binding:"max=255"`
	Description         string          `json:"description"`
	CoverURL            string          `json:"cover_url"`
	PdfURL              *string         `json:"pdf_url"`
	CurriculumComponent string          `json:"curriculum_component"`
	BookType            *model.BookType `json:"book_type"`
	ClassGroups         []string        `json:"class_groups"         binding:"omitempty,dive,max=100"`
}

// UpdateBookRequest partial patch for PUT /books/:id. A present class_groups
// array, even empty, replaces every tag.
type UpdateBookRequest struct {
	Title               *string         `json:"title"                binding:"omitempty,max=255"`
	Author              *string         `json:"author"               binding:"omitempty,max=255"`
	Description         *string         `json:"description"`
	CoverURL            *string         `json:"cover_url"`
	PdfURL              *string         `json:"pdf_url"`
	CurriculumComponent *string         `json:"curriculum_component"`
	BookType            *model.BookType `json:"book_type"`
	ClassGroups         *[]string       `json:"class_groups"         binding:"omitempty,dive,max=100"`
}
