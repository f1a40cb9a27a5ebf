package services

import "errors"

// Shared error sentinels. Handlers map these to HTTP status codes with
// errors.Is, so services wrap them with fmt.Errorf("%w: ...") for detail.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
