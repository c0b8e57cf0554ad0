package arbiter

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrInvalidBurstiness = errors.New("arbiter: burstiness must be > 0")
	ErrNilCallback       = errors.New("arbiter: callback is nil")
	ErrNilQuota          = errors.New("arbiter: quota is nil")
	ErrUnknownService    = errors.New("arbiter: no callback for service")
	ErrInvalidConfig     = errors.New("arbiter: invalid config")
)

// ServiceError wraps an error with the service it concerns.
type ServiceError struct {
	Err     error
	Service string
	Index   int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("arbiter: service=%s index=%d: %v", e.Service, e.Index, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err stems from a bad quota or service definition.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidBurstiness) ||
		errors.Is(err, ErrUnknownService)
}
