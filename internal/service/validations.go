package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// Penalty amounts come in increments of 10
		validate.RegisterValidation("penalty_step", func(fl validator.FieldLevel) bool {
			return fl.Field().Int()%10 == 0
		})
	})
}
