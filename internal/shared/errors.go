package shared

import "errors"

var (

	// transport errors
	ErrorNetwork = errors.New("network error")
	ErrorServer  = errors.New("server error")

	// auth-specific errors
	ErrorAuth = errors.New("authentication error")

	// request/resource errors
	ErrorValidation = errors.New("validation error")
	ErrorNotFound   = errors.New("not found")

	// story-specific errors
	ErrorMalformedURL = errors.New("malformed url")
)
