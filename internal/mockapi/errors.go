package mockapi

import "errors"

// Messages are shown to the console user verbatim.
var (
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrInvalidToken        = errors.New("Invalid token")
	ErrNotFound            = errors.New("Appointment not found")
	ErrServiceCostNotFound = errors.New("Service cost not found")
)

// ServiceCostNotFoundError names the service that has no price.
// It matches ErrServiceCostNotFound under errors.Is.
type ServiceCostNotFoundError struct {
	Service string
}

func (e *ServiceCostNotFoundError) Error() string {
	return "Service cost not found for: " + e.Service
}

func (e *ServiceCostNotFoundError) Is(target error) bool {
	return target == ErrServiceCostNotFound
}
