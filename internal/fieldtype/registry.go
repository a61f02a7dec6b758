package fieldtype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Widget identifies the input control kind of a form field. The widget
// governs how a submitted value is normalized and validated and what
// storage shape it produces (scalar string vs set of strings).
type Widget string

// Widget kinds
const (
	WidgetText        Widget = "text"
	WidgetEmail       Widget = "email"
	WidgetNumber      Widget = "number"
	WidgetTextarea    Widget = "textarea"
	WidgetSelect      Widget = "select"
	WidgetMultiselect Widget = "multiselect"
	WidgetCheckbox    Widget = "checkbox"
	WidgetRadio       Widget = "radio"
)

// Validation failure reasons
const (
	ReasonRequired      = "required"
	ReasonInvalidEmail  = "invalid_email"
	ReasonInvalidNumber = "invalid_number"
	ReasonInvalidChoice = "invalid_choice"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Known reports whether w is one of the registered widget kinds.
func Known(w Widget) bool {
	switch w {
	case WidgetText, WidgetEmail, WidgetNumber, WidgetTextarea,
		WidgetSelect, WidgetMultiselect, WidgetCheckbox, WidgetRadio:
		return true
	default:
		return false
	}
}

// Multi reports whether the widget produces a set of values rather than
// a single scalar. Unknown widgets fall back to text semantics.
func Multi(w Widget) bool {
	switch w {
	case WidgetMultiselect, WidgetCheckbox:
		return true
	default:
		return false
	}
}

// Normalize converts a raw posted value into its canonical string slice
// form. Single-valued widgets yield at most one element. Values are
// whitespace-trimmed and empty entries are dropped. A nil raw value
// yields an empty slice; unrecognized raw shapes are stringified.
func Normalize(w Widget, raw interface{}) []string {
	values := collect(raw)
	if !Multi(w) && len(values) > 1 {
		values = values[:1]
	}
	return values
}

func collect(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, collect(item)...)
		}
		return out
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case bool:
		if v {
			return []string{"1"}
		}
		return nil
	default:
		return []string{strings.TrimSpace(fmt.Sprintf("%v", v))}
	}
}

// Validate checks normalized values against the widget's semantics and
// the required flag. It returns the failure reason, or an empty string
// when the values are acceptable. Unknown widget kinds are validated
// with text semantics so that a stale stored type never breaks a form.
func Validate(w Widget, required bool, values []string) string {
	if len(values) == 0 {
		if required {
			return ReasonRequired
		}
		return ""
	}

	switch w {
	case WidgetEmail:
		for _, v := range values {
			if !emailPattern.MatchString(v) {
				return ReasonInvalidEmail
			}
		}
	case WidgetNumber:
		for _, v := range values {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return ReasonInvalidNumber
			}
		}
	}
	return ""
}

// ValidateChoices checks that every value is one of the allowed choice
// values. An empty allowed set disables the membership check (free-text
// fields and bare boolean checkboxes carry no choices).
func ValidateChoices(values []string, allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}
	permitted := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		permitted[a] = struct{}{}
	}
	for _, v := range values {
		if _, ok := permitted[v]; !ok {
			return ReasonInvalidChoice
		}
	}
	return ""
}
