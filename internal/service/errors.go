package service

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

// ── errors shared across services ──

var (
	ErrUserNotFound = apperrors.NotFound("Usuário não encontrado")
	ErrBookNotFound = apperrors.NotFound("Livro não encontrado")
	ErrInvalidRole  = apperrors.BadRequest("Função inválida")
)

// notFound maps gorm's missing-row error to the domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
