package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNilForm is returned when a request carries no form.
	ErrNilForm = errors.New("render: form is required")
	// ErrNilWriter is returned when no output sink is supplied.
	ErrNilWriter = errors.New("render: writer is required")
	// ErrRecursiveSubform signals a sub-form that contains one of its
	// enclosing forms.
	ErrRecursiveSubform = errors.New("render: recursive sub-form")
	// ErrUnknownFieldType is returned when a field type has no descriptor.
	ErrUnknownFieldType = errors.New("render: unknown field type")
	// ErrMissingSubform is returned when a sub-form field has no form.
	ErrMissingSubform = errors.New("render: sub-form field has no form")
)

// Error is the single failure a render reports. Output written before the
// failure must be discarded by the caller.
type Error struct {
	FormID    string
	Namespace string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render: form %q (namespace %q): %v", e.FormID, e.Namespace, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(formID, namespace string, err error) error {
	if err == nil {
		return nil
	}
	var renderErr *Error
	if errors.As(err, &renderErr) {
		return err
	}
	return &Error{FormID: formID, Namespace: namespace, Err: err}
}
