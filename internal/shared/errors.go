package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNoSession    = fmt.Errorf("not logged in")
	ErrUserNotFound = fmt.Errorf("user not found")

	// Remote store errors
	ErrNetwork        = fmt.Errorf("network failure")
	ErrServerRejected = fmt.Errorf("server rejected request")
	ErrPartialFailure = fmt.Errorf("partial failure")
	ErrBookNotFound   = fmt.Errorf("book not found")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
