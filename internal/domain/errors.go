package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindClientValidation ErrorKind = "CLIENT_VALIDATION"
	ErrorKindService          ErrorKind = "SERVICE"
	ErrorKindTransport        ErrorKind = "TRANSPORT"
)

const (
	MessageMissingInput = "Eep, something went wrong! We couldn't access the input values. :|"
	MessageTryAgain     = "That did not work! :'( Please try again."
)

// TokenError is returned for every failed token request. Message is safe to
// show to the user as is.
type TokenError struct {
	Kind    ErrorKind
	Message string
	Wrapped error
}

func (e *TokenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *TokenError) Unwrap() error {
	return e.Wrapped
}

// Is matches on Kind so errors.Is(err, &TokenError{Kind: ...}) works.
func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NewValidationError() *TokenError {
	return &TokenError{Kind: ErrorKindClientValidation, Message: MessageMissingInput}
}

// NewServiceError formats the service's code and info as "<code>: <info>".
func NewServiceError(code, info string) *TokenError {
	return &TokenError{Kind: ErrorKindService, Message: fmt.Sprintf("%s: %s", code, info)}
}

func NewTransportError(err error) *TokenError {
	return &TokenError{Kind: ErrorKindTransport, Message: MessageTryAgain, Wrapped: err}
}

// KindOf returns the kind of a TokenError, or transport for anything else.
func KindOf(err error) ErrorKind {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ErrorKindTransport
}

// UserMessage returns the text to display for err.
func UserMessage(err error) string {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Message
	}
	return MessageTryAgain
}

func IsValidationError(err error) bool {
	return err != nil && KindOf(err) == ErrorKindClientValidation
}

func IsServiceError(err error) bool {
	return err != nil && KindOf(err) == ErrorKindService
}

func IsTransportError(err error) bool {
	return err != nil && KindOf(err) == ErrorKindTransport
}
