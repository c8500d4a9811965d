package auth

import (
	"errors"
	"fmt"
)

// Error is the error returned by Login, the underlying Err contains the
// reason, e.g. the SOAP fault returned by the Salesforce login endpoint.
type Error struct {
	Err error
	Msg string
}

func (ae *Error) Error() string {
	var msg string = ae.Msg
	if msg == "" {
		msg = ae.Err.Error()
	}
	return fmt.Sprintf("authentication error: %s", msg)
}

func (ae *Error) Unwrap() error {
	return ae.Err
}

func (ae *Error) Is(target error) bool {
	return target == ae.Err
}

// IsInvalidAuthErr returns true if the error is an authentication error
// caused by Salesforce rejecting the credentials (as opposed to a
// transport failure).
func IsInvalidAuthErr(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	var fault *SOAPFault
	return errors.As(e.Err, &fault)
}
