package route

import (
	"fmt"

	"routetracker/internal/pkg/errs"
)

// Status is the lifecycle state of a route. Any known status may replace
// any other.
type Status string

const (
	Planned    Status = "PLANNED"
	InProgress Status = "IN_PROGRESS"
	Completed  Status = "COMPLETED"
	Cancelled  Status = "CANCELLED"
)

var statuses = map[Status]struct{}{
	Planned:    {},
	InProgress: {},
	Completed:  {},
	Cancelled:  {},
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
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid route status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
