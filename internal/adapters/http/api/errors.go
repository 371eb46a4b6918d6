package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrInvalidJSON   = errors.New("invalid JSON body")
	ErrMissingText   = errors.New("text is required")
	ErrMissingCity   = errors.New("city query parameter is required")
	ErrNotConfigured = errors.New("weather API key is not configured")
	ErrUpstream      = errors.New("weather upstream unavailable")
	ErrInternal      = errors.New("internal server error")
)

// KindError annotates an error with the failing operation and a sentinel kind.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error {
	return &KindError{Op: op, Kind: kind}
}

// WrapKind wraps cause as kind raised by op.
func WrapKind(op string, kind, cause error) error {
	return &KindError{Op: op, Kind: kind, Err: cause}
}

// clientMessage returns the text safe to show a caller: the kind for
// KindError, the error text otherwise.
func clientMessage(err error) string {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind.Error()
	}
	return err.Error()
}
