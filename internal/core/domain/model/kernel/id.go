package kernel

import (
	"errors"
	"fmt"
	"strconv"

	"routetracker/internal/pkg/errs"
)

// ErrIDIsNotAssigned is returned when an aggregate has not been persisted yet.
var ErrIDIsNotAssigned = errors.New("id is not assigned")

// ID identifies a route or an order. Zero means "not yet persisted".
type ID int64

// ParseID parses a decimal identifier such as a URL path segment.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	id := ID(v)
	if err = id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate checks that the identifier was assigned.
func (id ID) Validate() error {
	if id == 0 {
		return ErrIDIsNotAssigned
	}
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// IsAssigned reports whether the identifier refers to a persisted aggregate.
func (id ID) IsAssigned() bool {
	return id > 0
}

// Int64 returns the raw value.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
