package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator - обертка для использования в Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New создает и настраивает валидатор
func New() (*CustomValidator, error) {
	v := validator.New()

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		return nil, err
	}

	return &CustomValidator{validator: v}, nil
}
