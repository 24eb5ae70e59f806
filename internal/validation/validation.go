// Package validation shapes server-side validation failures for display and
// checks user-supplied CLI options.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a form field name to the messages to show next to it.
type FieldErrors map[string][]string

// Formatter reshapes the raw field errors of a 422 response for display.
type Formatter func(raw map[string][]string) FieldErrors

// FormatErrors is the default Formatter. Field names and messages are trimmed,
// blank and repeated messages are dropped, and fields left without messages
// are omitted. The result is never nil.
func FormatErrors(raw map[string][]string) FieldErrors {
	out := make(FieldErrors, len(raw))
	for field, messages := range raw {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		seen := make(map[string]bool, len(messages))
		for _, msg := range messages {
			msg = strings.TrimSpace(msg)
			if msg == "" || seen[msg] {
				continue
			}
			seen[msg] = true
			out[field] = append(out[field], msg)
		}
	}
	return out
}

// Has reports whether the field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// First returns the first message for field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the field names in sorted order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy; a nil receiver yields an empty map.
func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for field, msgs := range fe {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// IsValidOutputFormat checks if the given CLI output format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "table", "json", "yaml", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'table', 'json', 'yaml', 'csv'", format)
	}
}
