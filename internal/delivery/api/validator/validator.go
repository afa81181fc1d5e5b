// Package validator plugs go-playground/validator into echo with the
// marketplace enumeration tags.
package validator

import (
	"reflect"
	"strings"

	"agromart/internal/domain/entity"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validatorv10.Validate
}

// New returns a Validator with the order_status and product_category tags
// registered. Field names in errors use the json tag.
func New() *Validator {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
	_ = v.RegisterValidation("order_status", func(fl validatorv10.FieldLevel) bool {
		return entity.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("product_category", func(fl validatorv10.FieldLevel) bool {
		return entity.ProductCategory(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens validation errors into field -> failed tag.
// It returns nil for any other error.
func FieldErrors(err error) map[string]string {
	validationErrs, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Namespace()] = fieldErr.Tag()
	}

	return fields
}
