package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"pms/internal/requestctx"
	"pms/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	return v
}

// Validate checks the `validate` tags of payload and reports one issue per
// failing field, named by its JSON path.
func Validate(payload any) []ValidationIssue {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationIssue{{Field: "body", Reason: err.Error()}}
	}
	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		issues = append(issues, ValidationIssue{Field: fieldPath(fieldErr), Reason: reason(fieldErr)})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Field == issues[j].Field {
			return issues[i].Reason < issues[j].Reason
		}
		return issues[i].Field < issues[j].Field
	})
	return issues
}

func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func reason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fieldErr.Param()
	case "min", "gte":
		return "must be at least " + fieldErr.Param()
	case "max", "lte":
		return "must be at most " + fieldErr.Param()
	case "date":
		return "must be a valid date in YYYY-MM-DD format"
	case "dive":
		return "is invalid"
	}
	return "failed " + fieldErr.Tag() + " check"
}

// DecodeJSON decodes the request body into dst and validates it, writing the
// error response itself when it returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	requestID := requestctx.GetRequestID(r.Context())
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		FailValidation(w, requestID, []ValidationIssue{{Field: "body", Reason: "must be a valid JSON object"}})
		return false
	}
	if issues := Validate(dst); len(issues) > 0 {
		FailValidation(w, requestID, issues)
		return false
	}
	return true
}

// DecodeOptionalJSON is DecodeJSON for endpoints whose body may be omitted.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		if issues := Validate(dst); len(issues) > 0 {
			FailValidation(w, requestctx.GetRequestID(r.Context()), issues)
			return false
		}
		return true
	}
	return DecodeJSON(w, r, dst)
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}
