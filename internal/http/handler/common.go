package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/domain"
)

var validate = validator.New()

const dateParamLayout = "2006-01-02"

// parsePeriod reads optional start/end query parameters (YYYY-MM-DD). When
// absent the window is the trailing defaultDays ending now.
func parsePeriod(r *http.Request, now time.Time, defaultDays int) (analytics.Period, error) {
	period := analytics.Period{
		Start: now.AddDate(0, 0, -defaultDays),
		End:   now,
	}

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return period, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", raw)
		}
		period.Start = start
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return period, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", raw)
		}
		// End of the requested day, so same-day windows are non-empty.
		period.End = end.Add(24*time.Hour - time.Millisecond)
	}

	if period.End.Before(period.Start) {
		return period, fmt.Errorf("end date is before start date")
	}
	return period, nil
}

// parseOptionalPeriod is parsePeriod but returns nil when neither bound is
// given, meaning "no window filter".
func parseOptionalPeriod(r *http.Request, now time.Time, defaultDays int) (*analytics.Period, error) {
	if r.URL.Query().Get("start") == "" && r.URL.Query().Get("end") == "" {
		return nil, nil
	}
	period, err := parsePeriod(r, now, defaultDays)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// monthsWindow builds a period covering the trailing months whole-month
// aligned, ending now.
func monthsWindow(now time.Time, months int) analytics.Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	return analytics.Period{Start: start, End: now}
}

// parseIntParam reads an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldName := toJSONFieldName(fe.Field())
			errors[fieldName] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: errors,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	// Convert first character to lowercase for camelCase
	return strings.ToLower(field[:1]) + field[1:]
}

// parseJSON parses a JSON string into the target interface
func parseJSON(data string, target interface{}) error {
	return json.Unmarshal([]byte(data), target)
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	default:
		return domain.ErrorTypeInternal
	}
}
