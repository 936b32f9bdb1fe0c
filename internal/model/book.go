package model

import "github.com/lib/pq"

// Book maps to books. ClassGroups is read-only here; its rows live in
// book_class_groups and are aggregated on every read.
type Book struct {
	ID                  string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title               string         `gorm:"type:varchar(255);not null"                     json:"title"`
	Author              string         `gorm:"type:varchar(255);not null"                     json:"author"`
	Description         string         `gorm:"type:text;not null;default:''"                  json:"description"`
	CoverURL            string         `gorm:"column:cover_url;type:text;not null;default:''" json:"cover_url"`
	PdfURL              *string        `gorm:"column:pdf_url;type:text"                       json:"pdf_url"`
	CurriculumComponent string         `gorm:"type:varchar(255);not null"                     json:"curriculum_component"`
	BookType            BookType       `gorm:"type:varchar(20);not null;default:'student'"    json:"book_type"`
	ClassGroups         pq.StringArray `gorm:"->;type:varchar[]"                              json:"class_groups"`
	Timestamps
}

func (Book) TableName() string { return "books" }

// BookClassGroup maps to book_class_groups.
type BookClassGroup struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookID     string `gorm:"type:uuid;not null;index"`
	ClassGroup string `gorm:"type:varchar(100);not null"`
}

func (BookClassGroup) TableName() string { return "book_class_groups" }
