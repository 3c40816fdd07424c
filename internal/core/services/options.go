package services

import "time"

// ServiceOption is a functional option applied to the shared BaseService of every service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source used for audit and lifecycle timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}
