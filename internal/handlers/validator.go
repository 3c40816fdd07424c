package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding rules used by the request DTOs on gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("nonnegative_decimal", nonNegativeDecimal); err != nil {
			registerErr = fmt.Errorf("failed to register 'nonnegative_decimal': %w", err)
		}
	})
	return registerErr
}

func nonNegativeDecimal(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !value.IsNegative()
}
