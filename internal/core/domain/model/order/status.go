package order

import (
	"fmt"

	"routetracker/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Any known status may replace
// any other.
type Status string

const (
	Pending   Status = "PENDING"
	Assigned  Status = "ASSIGNED"
	InTransit Status = "IN_TRANSIT"
	Delivered Status = "DELIVERED"
	Failed    Status = "FAILED"
)

var statuses = map[Status]struct{}{
	Pending:   {},
	Assigned:  {},
	InTransit: {},
	Delivered: {},
	Failed:    {},
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := statuses[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
