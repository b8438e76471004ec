package validator

import (
	"fmt"

	v10 "github.com/go-playground/validator/v10"
)

// Validator provides struct validation on `validate` tags
type Validator interface {
	Validate(interface{}) error
	ValidateVar(value interface{}, rules string) error
}

type validator struct {
	v *v10.Validate
}

func New() Validator {
	return &validator{v: v10.New()}
}

func (val *validator) Validate(obj interface{}) error {
	if err := val.v.Struct(obj); err != nil {
		var errs v10.ValidationErrors
		if ok := asValidationErrors(err, &errs); ok && len(errs) > 0 {
			fe := errs[0]
			return fmt.Errorf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

func (val *validator) ValidateVar(value interface{}, rules string) error {
	return val.v.Var(value, rules)
}

func asValidationErrors(err error, target *v10.ValidationErrors) bool {
	if errs, ok := err.(v10.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}
