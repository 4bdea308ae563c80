package cursor

import "errors"

// CursorError is the typed failure surface of Decode. Callers translate it
// into a client-facing error; the From conversion path swallows it instead.
type CursorError struct {
	// Code identifies the failure category.
	Code CursorErrorCode
}

// CursorErrorCode categorizes cursor decoding errors.
type CursorErrorCode string

const (
	// ErrCursorInvalidBase64 indicates the token is not valid base64.
	ErrCursorInvalidBase64 CursorErrorCode = "INVALID_BASE64"

	// ErrCursorInvalidFormat indicates the decoded payload is malformed.
	ErrCursorInvalidFormat CursorErrorCode = "INVALID_FORMAT"

	// ErrCursorTooLarge indicates the token exceeds the size cap.
	ErrCursorTooLarge CursorErrorCode = "TOO_LARGE"

	// ErrCursorTooManyFields indicates the payload exceeds the field cap.
	ErrCursorTooManyFields CursorErrorCode = "TOO_MANY_FIELDS"
)

// Error implements the error interface.
func (e *CursorError) Error() string {
	switch e.Code {
	case ErrCursorInvalidBase64:
		return "invalid base64 encoding"
	case ErrCursorInvalidFormat:
		return "invalid cursor format"
	case ErrCursorTooLarge:
		return "cursor exceeds maximum size"
	case ErrCursorTooManyFields:
		return "cursor has too many fields"
	default:
		return "invalid cursor"
	}
}

// IsCursorError returns the CursorError if err is or wraps one.
func IsCursorError(err error) (*CursorError, bool) {
	var ce *CursorError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
