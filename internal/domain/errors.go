package domain

import "errors"

// Common domain errors. Usecases translate these to apperror at the HTTP
// boundary; repositories return them instead of driver-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrConsentRequired     = errors.New("profile has not given consent")
	ErrInvalidCapacity     = errors.New("invalid capacity data")
	ErrResourceUnavailable = errors.New("resource no longer available")
	ErrTransientStore      = errors.New("transient store error")
)
