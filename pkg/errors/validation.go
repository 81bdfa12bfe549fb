package errors

import "unicode"

const (
	maxWidgetIDLength   = 100
	maxWidgetTypeLength = 50
)

// ValidateWidgetID validates a caller-supplied widget id.
//
// Ids end up in URLs, storage keys and log lines, so the rules are strict:
//   - No empty ids
//   - Maximum length of 100 bytes
//   - Only Unicode letters and digits, hyphens and underscores
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "widget id cannot be empty")
	}

	if len(id) > maxWidgetIDLength {
		return New(ErrCodeInvalidInput, "widget id too long (max %d characters)", maxWidgetIDLength)
	}

	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(ErrCodeInvalidInput, "widget id %q contains invalid character %q", id, r)
		}
	}

	return nil
}

// ValidateWidgetType validates a widget type identifier.
// Unknown types are allowed; only malformed identifiers are rejected.
func ValidateWidgetType(widgetType string) error {
	if widgetType == "" {
		return New(ErrCodeInvalidInput, "widget type cannot be empty")
	}

	if len(widgetType) > maxWidgetTypeLength {
		return New(ErrCodeInvalidInput, "widget type too long (max %d characters)", maxWidgetTypeLength)
	}

	for _, r := range widgetType {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "widget type %q contains invalid characters", widgetType)
		}
	}

	return nil
}
