package utils

import (
	"debitcard-backend/internal/models"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "http://localhost:8080/swagger/index.html"

var registerValidator sync.Once

// setupValidator makes validator report json/form tag names instead of Go
// struct field names and registers the domain tags:
//
//	currency  one of models.Currencies
func setupValidator() {
	registerValidator.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return models.CurrencyCode(fl.Field().String()).Valid()
		})
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// BindAndValidate binds the JSON request body to obj and validates it.
// An empty body is validated as an empty object so missing fields are
// reported by name. On failure it writes a 422 response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	setupValidator()
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		RespondValidationErrors(c, validationDetails(err))
		return false
	}
	return true
}

// BindQueryAndValidate is BindAndValidate for query string parameters.
func BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	setupValidator()
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondValidationErrors(c, validationDetails(err))
		return false
	}
	return true
}

// RespondValidationErrors writes the standard 422 validation envelope.
func RespondValidationErrors(c *gin.Context, details []ValidationErrorDetail) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid",
		Data: ValidationErrorData{
			Errors:        details,
			Documentation: DocumentationLink,
		},
	})
}

func validationDetails(err error) []ValidationErrorDetail {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		numErr         *strconv.NumError
	)

	switch {
	case errors.As(err, &validationErrs):
		details := make([]ValidationErrorDetail, 0, len(validationErrs))
		for _, e := range validationErrs {
			details = append(details, fieldErrorDetail(e))
		}
		return details
	case errors.As(err, &typeErr):
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	case errors.As(err, &numErr):
		return []ValidationErrorDetail{{
			Field:    "query",
			Message:  "Query parameter has invalid type",
			Expected: "number",
			Received: numErr.Num,
		}}
	default:
		return []ValidationErrorDetail{{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		}}
	}
}

func fieldErrorDetail(e validator.FieldError) ValidationErrorDetail {
	detail := ValidationErrorDetail{
		Field:    e.Field(),
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}

	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
		detail.Expected = "not null"
	case "boolean":
		detail.Message = fmt.Sprintf("Field '%s' must be true or false", e.Field())
		detail.Expected = "boolean"
	case "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("min length %s", e.Param())
	case "max":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("max length %s", e.Param())
	case "oneof":
		detail.Message = fmt.Sprintf("Field '%s' must be one of: %s", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("one of %s", e.Param())
	case "currency":
		detail.Message = fmt.Sprintf("Field '%s' must be one of: %s", e.Field(), currencyList())
		detail.Expected = fmt.Sprintf("one of %s", currencyList())
	case "gt":
		detail.Message = fmt.Sprintf("Field '%s' must be greater than %s", e.Field(), e.Param())
	case "email":
		detail.Message = fmt.Sprintf("Field '%s' must be a valid email address", e.Field())
		detail.Expected = "email format"
	}

	return detail
}

func currencyList() string {
	codes := make([]string, 0, len(models.Currencies))
	for _, c := range models.Currencies {
		codes = append(codes, string(c))
	}
	return strings.Join(codes, " ")
}
