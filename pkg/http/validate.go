package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(fieldName)
}

// fieldName reports the query or json name so errors match what the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// ReadAndValidateRequest fills defaults, binds the request over them and validates.
// Defaults go first so an explicit zero from the client is kept.
func ReadAndValidateRequest(c echo.Context, req interface{}) interface{} {
	if err := defaults.Set(req); err != nil {
		return validatorDefaultRules(err)
	}

	if err := c.Bind(req); err != nil {
		return validatorDefaultRules(err)
	}

	// Validate struct
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validatorDefaultRules(err)
	}

	return nil
}

func validatorDefaultRules(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs := make([]ValidationError, 0, len(validationErrors))
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Code:    "ERR_" + strings.ToUpper(e.Tag()),
				Field:   e.Field(),
				Message: describe(e),
				Params:  errorParams(e),
			})
		}
		return errs
	}

	// Bind failures: a query value that does not parse into its field type.
	var be *echo.BindingError
	if errors.As(err, &be) {
		return []ValidationError{{Code: "ERR_MALFORMED", Field: be.Field, Message: fmt.Sprintf("%v", be.Message)}}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{Code: "ERR_MALFORMED", Message: fmt.Sprintf("%v", he.Message)}}
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
}

var fixedMessages = map[string]string{
	"required": "%s is required",
	"numeric":  "%s must be numeric",
}

var boundWords = map[string]string{
	"min": "at least",
	"gte": "greater than or equal to",
	"max": "at most",
	"lte": "less than or equal to",
	"gt":  "greater than",
	"lt":  "less than",
}

func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	if f, ok := fixedMessages[fe.Tag()]; ok {
		return fmt.Sprintf(f, field)
	}
	if w, ok := boundWords[fe.Tag()]; ok {
		if fe.Type().Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max") {
			return fmt.Sprintf("%s must be %s %s characters", field, w, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, w, param)
	}
	switch fe.Tag() {
	case "required_without":
		return fmt.Sprintf("%s is required when %s is absent", field, param)
	case "datetime":
		return fmt.Sprintf("%s must match layout %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func errorParams(fe validator.FieldError) map[string]interface{} {
	params := make(map[string]interface{})
	switch fe.Tag() {
	case "min", "gte":
		params["min"] = fe.Param()
	case "max", "lte":
		params["max"] = fe.Param()
	case "gt", "lt":
		params["value"] = fe.Param()
	case "datetime":
		params["layout"] = fe.Param()
	case "oneof":
		params["options"] = strings.Split(fe.Param(), " ")
	}
	return params
}
