package domain

import "errors"

// Kind classifies a failure so the transport can choose a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindForbidden
	KindAuth
	KindInvalidBusinessArgument
	KindInvalidData
	KindDuplicatedData
	KindEntityNotFound
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindAuth:
		return "auth"
	case KindInvalidBusinessArgument:
		return "invalid_business_argument"
	case KindInvalidData:
		return "invalid_data"
	case KindDuplicatedData:
		return "duplicated_data"
	case KindEntityNotFound:
		return "entity_not_found"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error carries a kind and a client-facing message. Message is part of the
// API contract; Err is the optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func Forbidden(msg string) error               { return newError(KindForbidden, msg, nil) }
func Auth(msg string, cause error) error       { return newError(KindAuth, msg, cause) }
func InvalidBusinessArgument(msg string) error { return newError(KindInvalidBusinessArgument, msg, nil) }
func InvalidData(msg string) error             { return newError(KindInvalidData, msg, nil) }
func DuplicatedData(msg string) error          { return newError(KindDuplicatedData, msg, nil) }
func EntityNotFound(msg string) error          { return newError(KindEntityNotFound, msg, nil) }
func IO(msg string, cause error) error         { return newError(KindIO, msg, cause) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
