package client

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable reports a transport-level failure (network, timeout,
// non-2xx) against one backing service. Callers recover from it at the
// collection level.
type ErrServiceUnavailable struct {
	error
	Service string
}

func NewErrServiceUnavailable(service string, err error) *ErrServiceUnavailable {
	return &ErrServiceUnavailable{
		error:   fmt.Errorf("%s service error: %w", service, err),
		Service: service,
	}
}

// ErrAuthentication reports a credential or token failure against keystone.
type ErrAuthentication struct {
	error
}

func NewErrAuthentication(err error) *ErrAuthentication {
	return &ErrAuthentication{fmt.Errorf("authentication failed: %w", err)}
}

// ErrResourceNotFound reports an id that the backing service does not know.
type ErrResourceNotFound struct {
	error
	Resource string
	ID       string
}

func NewErrResourceNotFound(resource, id string) *ErrResourceNotFound {
	return &ErrResourceNotFound{
		error:    fmt.Errorf("%s %s not found", resource, id),
		Resource: resource,
		ID:       id,
	}
}

// ErrMalformedResponse reports an unexpected payload shape from a backing
// service.
type ErrMalformedResponse struct {
	error
	Service string
}

func NewErrMalformedResponse(service string, err error) *ErrMalformedResponse {
	return &ErrMalformedResponse{
		error:   fmt.Errorf("malformed response from %s: %w", service, err),
		Service: service,
	}
}

// IsNotFound reports whether err wraps a not-found signal.
func IsNotFound(err error) bool {
	var notFound *ErrResourceNotFound
	return errors.As(err, &notFound)
}
