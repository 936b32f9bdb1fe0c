package handler

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the role and booktype tags to gin's validator.
// It must run before any request is bound.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected binding validator engine")
			return
		}
		if err := v.RegisterValidation("role", validateRole); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("booktype", validateBookType)
	})
	return registerErr
}

func validateRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

func validateBookType(fl validator.FieldLevel) bool {
	return model.BookType(fl.Field().String()).Valid()
}
