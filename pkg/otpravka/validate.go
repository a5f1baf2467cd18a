package otpravka

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names so errors line up with the service documentation.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct validates a request record against its `validate` tags.
func (c *Client) checkStruct(op string, v any) error {
	if err := c.validate.Struct(v); err != nil {
		return validationError(op, err)
	}
	return nil
}

// checkVar validates a single argument, e.g. an identifier in a path.
func (c *Client) checkVar(op, name string, v any, tag string) error {
	if err := c.validate.Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &APIError{
				Kind:      KindValidation,
				Operation: op,
				Message:   fmt.Sprintf("invalid %s: failed %q", name, verrs[0].Tag()),
				Cause:     err,
			}
		}
		return validationError(op, err)
	}
	return nil
}

func validationError(op string, err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &APIError{Kind: KindValidation, Operation: op, Message: err.Error(), Cause: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &APIError{
		Kind:      KindValidation,
		Operation: op,
		Message:   "invalid fields: " + strings.Join(fields, ", "),
		Cause:     err,
	}
}
