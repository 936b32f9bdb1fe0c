package repository

import "gorm.io/gorm"

// Repository aggregates every repository over one connection pool.
type Repository struct {
	User                UserRepository
	Book                BookRepository
	Assignment          AssignmentRepository
	CurriculumComponent CurriculumComponentRepository
	Series              SeriesRepository
}

// NewRepository wires all repositories to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:                NewUserRepo(db),
		Book:                NewBookRepo(db),
		Assignment:          NewAssignmentRepo(db),
		CurriculumComponent: NewCurriculumComponentRepo(db),
		Series:              NewSeriesRepo(db),
	}
}
