package validators

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/stellar/go-stellar-sdk/strkey"

	"github.com/substratumservices/horizon-client/internal/endpoint"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("public_key", publicKeyValidation)
	_ = validate.RegisterValidation("asset_code", assetCodeValidation)
	_ = validate.RegisterValidation("order", orderValidation)
	validate.RegisterAlias("not_empty", "required")
	return validate
}

func publicKeyValidation(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	return strkey.IsValidEd25519PublicKey(addr) || strkey.IsValidMuxedAccountEd25519PublicKey(addr)
}

// assetCodeValidation accepts 1 to 12 ASCII letters and digits
func assetCodeValidation(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) == 0 || len(code) > 12 {
		return false
	}
	for _, r := range code {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func orderValidation(fl validator.FieldLevel) bool {
	_, err := endpoint.ParseOrder(fl.Field().String())
	return err == nil
}

// ValidationError flattens validator errors into one error keyed by field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates s and converts validator errors into a *ValidationError
func Struct(validate *validator.Validate, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return &ValidationError{Fields: ParseValidationError(validationErrors)}
}

func ParseValidationError(validationErrors validator.ValidationErrors) map[string]string {
	fieldErrors := make(map[string]string)
	for _, err := range validationErrors {
		fieldErrors[getFieldName(err)] = msgForFieldError(err)
	}
	return fieldErrors
}

// msgForFieldError gets the message for the given validation error (tag).
func msgForFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "not_empty":
		return "This field cannot be empty"
	case "public_key":
		return "Invalid public key provided"
	case "asset_code":
		return "Asset code must be 1 to 12 letters or digits"
	case "order":
		return fmt.Sprintf("Unexpected order %q. Expected asc or desc", fieldError.Value())
	case "url", "http_url":
		return "Should be an absolute URL"
	case "oneof":
		params := strings.Join(strings.Split(fieldError.Param(), " "), ", ")
		return fmt.Sprintf("Unexpected value %q. Expected one of the following values: %s", fieldError.Value(), params)
	case "gt":
		if fieldError.Kind() == reflect.Slice || fieldError.Kind() == reflect.Array {
			return "Should have at least 1 element"
		}
		return fmt.Sprintf("Should be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("Should be greater than or equal %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Should be less than or equal %s", fieldError.Param())
	default:
		return "Invalid value"
	}
}

func getFieldName(fieldError validator.FieldError) string {
	// Ex.: structName.FieldName, structName.nestedStructName.nestedStructFieldName, ...
	namespace := strings.Split(fieldError.StructNamespace(), ".")
	length := len(namespace)
	if length == 2 {
		return lcFirst(namespace[1])
	}

	if length > 2 {
		return fmt.Sprintf("%s.%s", lcFirst(namespace[length-2]), lcFirst(namespace[length-1]))
	}

	return lcFirst(namespace[0])
}

// lcFirst lowers the case of the first letter of the given string.
//
//	Example: HorizonURL -> horizonURL
func lcFirst(str string) string {
	for index, letter := range str {
		return string(unicode.ToLower(letter)) + str[index+1:]
	}
	return ""
}
