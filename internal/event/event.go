package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Log types accepted on the log endpoint.
const (
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

var validate = validator.New()

func init() {
	// Report violations under the JSON field name, not the Go one.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError aggregates every constraint a payload violated, so a
// caller can correct the request in one pass.
type ValidationError struct {
	Causes []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Causes, "; ")
}

// logPayload is the wire shape of a log event. Pointer fields
// distinguish absent from present-but-empty: defaults apply only on
// absence, never to an invalid present value.
type logPayload struct {
	Type      *string        `json:"type" validate:"omitnil,oneof=error warning info"`
	AppName   string         `json:"appName" validate:"required"`
	Message   *string        `json:"message" validate:"required"`
	Timestamp *string        `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
	Stack     string         `json:"stack"`
	URL       string         `json:"url" validate:"omitempty,url"`
}

// feedbackPayload is the wire shape of a feedback event.
type feedbackPayload struct {
	AppName   string         `json:"appName" validate:"required"`
	Name      string         `json:"name"`
	Email     string         `json:"email" validate:"omitempty,email"`
	Message   *string        `json:"message" validate:"required,min=1"`
	Rating    *float64       `json:"rating" validate:"omitnil,gte=1,lte=5"`
	Source    string         `json:"source"`
	Timestamp *string        `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// Log is a normalized log event with defaults applied.
type Log struct {
	Type      string
	AppName   string
	Message   string
	Timestamp time.Time
	Metadata  map[string]any
	Stack     string
	URL       string
}

// Feedback is a normalized feedback event with defaults applied.
type Feedback struct {
	AppName   string
	Name      string
	Email     string
	Message   string
	Rating    float64 // 0 when not provided
	Source    string
	Timestamp time.Time
	Metadata  map[string]any
}

// ParseLog decodes and validates a log event body. Unknown fields are
// ignored; every violated constraint ends up in the returned
// ValidationError.
func ParseLog(body []byte) (*Log, error) {
	var p logPayload
	if err := decode(body, &p); err != nil {
		return nil, err
	}

	causes := structCauses(validate.Struct(&p))
	ts, tsCause := normalizeTimestamp(p.Timestamp)
	if tsCause != "" {
		causes = append(causes, tsCause)
	}
	if len(causes) > 0 {
		return nil, &ValidationError{Causes: causes}
	}

	typ := TypeInfo
	if p.Type != nil {
		typ = *p.Type
	}
	return &Log{
		Type:      typ,
		AppName:   p.AppName,
		Message:   *p.Message,
		Timestamp: ts,
		Metadata:  p.Metadata,
		Stack:     p.Stack,
		URL:       p.URL,
	}, nil
}

// ParseFeedback decodes and validates a feedback event body.
func ParseFeedback(body []byte) (*Feedback, error) {
	var p feedbackPayload
	if err := decode(body, &p); err != nil {
		return nil, err
	}

	causes := structCauses(validate.Struct(&p))
	ts, tsCause := normalizeTimestamp(p.Timestamp)
	if tsCause != "" {
		causes = append(causes, tsCause)
	}
	if len(causes) > 0 {
		return nil, &ValidationError{Causes: causes}
	}

	var rating float64
	if p.Rating != nil {
		rating = *p.Rating
	}
	return &Feedback{
		AppName:   p.AppName,
		Name:      p.Name,
		Email:     p.Email,
		Message:   *p.Message,
		Rating:    rating,
		Source:    p.Source,
		Timestamp: ts,
		Metadata:  p.Metadata,
	}, nil
}

// decode unmarshals the body, mapping JSON type mismatches to a
// ValidationError so the caller sees them as a bad request.
func decode(body []byte, v any) error {
	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{Causes: []string{
			fmt.Sprintf("%s must be of type %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}
	}
	return &ValidationError{Causes: []string{"body must be a valid JSON object"}}
}

// normalizeTimestamp parses an ISO-8601 timestamp, defaulting to now
// only when the field is entirely absent.
func normalizeTimestamp(raw *string) (time.Time, string) {
	if raw == nil {
		return time.Now().UTC(), ""
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return time.Time{}, "timestamp must be an ISO-8601 datetime"
	}
	return t, ""
}

func structCauses(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	causes := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		causes = append(causes, describe(fe))
	}
	return causes
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " cannot be empty"
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed on the %s constraint", fe.Field(), fe.Tag())
	}
}
