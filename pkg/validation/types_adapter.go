package validation

import (
	"database/sql/driver"
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// nullValue разворачивает null-тип в его значение. Пустой null отдаётся как nil,
// и тогда срабатывает omitempty.
func nullValue(field reflect.Value) interface{} {
	valuer, ok := field.Interface().(driver.Valuer)
	if !ok {
		return nil
	}
	val, err := valuer.Value()
	if err != nil {
		return nil
	}
	return val
}

// registerNullTypes учит валидатор смотреть внутрь null-полей из DTO панели.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(nullValue,
		null.String{},
		null.Int{},
		null.Bool{},
		null.Time{},
	)
}
