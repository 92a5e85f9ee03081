package services

import (
	"fmt"
	"strings"
)

// invalid builds an ErrInvalidInput carrying a field-specific reason.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requireText trims *v in place and fails when the result is blank.
func requireText(name string, v *string) error {
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return invalid("%s is required", name)
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// trimPtr trims an optional string and turns a blank one into nil.
func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// boolOr returns *p, or def when p is nil.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// patch collects column updates from optional fields. Only fields the caller
// actually sent end up in the map.
type patch map[string]any

// text records a required column; a blank value is rejected.
func (p patch) text(col string, v *string) error {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return invalid("%s must not be empty", col)
	}
	p[col] = s
	return nil
}

// optText records a nullable column; a blank value clears it.
func (p patch) optText(col string, v *string) {
	if v != nil {
		p[col] = trimPtr(v)
	}
}
