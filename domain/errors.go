package domain

import "errors"

// Error kinds. Every error surfaced to a client unwraps to exactly one of them.
var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrUnauthorized will throw if no credential is supplied
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrForbidden will throw if the credential or the caller is not allowed
	ErrForbidden = errors.New("Forbidden")
)

// request errors
var (
	ErrMissingFields   = NewError(ErrBadParamInput, "Missing required fields")
	ErrInvalidAddress  = NewError(ErrBadParamInput, "Invalid wallet address")
	ErrInvalidPrice    = NewError(ErrBadParamInput, "Price must be greater than 0")
	ErrInvalidRarity   = NewError(ErrBadParamInput, "Invalid rarity")
	ErrNftNotFound     = NewError(ErrNotFound, "NFT not found")
	ErrNotOwner        = NewError(ErrForbidden, "You do not own this NFT")
	ErrMissingAdminPwd = NewError(ErrUnauthorized, "Missing admin password")
	ErrInvalidAdminPwd = NewError(ErrForbidden, "Invalid admin password")
	ErrInvalidBody     = NewError(ErrBadParamInput, "Invalid request body")
)

// Error is a client facing error: Error() is the message sent back,
// Unwrap() is its kind.
type Error struct {
	kind error
	msg  string
}

func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}
