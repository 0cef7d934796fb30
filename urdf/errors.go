package urdf

import "github.com/pkg/errors"

// ErrMalformedDocument is matched (with errors.Is) by every error Parse returns.
var ErrMalformedDocument = errors.New("malformed URDF document: no robot element")

// MalformedDocumentError carries the decoder failure behind ErrMalformedDocument.
type MalformedDocumentError struct {
	Cause error
}

func (e *MalformedDocumentError) Error() string {
	if e.Cause == nil {
		return ErrMalformedDocument.Error()
	}
	return ErrMalformedDocument.Error() + ": " + e.Cause.Error()
}

// Unwrap returns the decoder failure.
func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformedDocument.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func newMalformedDocumentError(cause error) error {
	return &MalformedDocumentError{Cause: cause}
}
