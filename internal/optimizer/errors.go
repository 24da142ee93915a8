package optimizer

import "fmt"

// APIError is a non-success response from the optimization service. Detail
// carries the service's own message and is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("optimizer error: status=%d", e.StatusCode)
}

// BadRequestError indicates the service rejected the request (4xx), e.g. an
// inverted date range or out-of-range k.
type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string { return e.APIError.Error() }

// ServerError indicates a 5xx failure inside the service.
type ServerError struct{ *APIError }

func (e *ServerError) Error() string {
	return fmt.Sprintf("optimizer service error: %s", e.APIError.Error())
}

// UnreachableError indicates the service endpoint could not be reached.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("optimizer unreachable at %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("optimizer unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

func classifyAPIError(apiErr *APIError) error {
	switch {
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return &BadRequestError{apiErr}
	case apiErr.StatusCode >= 500 && apiErr.StatusCode < 600:
		return &ServerError{apiErr}
	}
	return apiErr
}
