package route_test

import (
	"testing"

	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"PLANNED", "IN_PROGRESS", "COMPLETED", "CANCELLED"} {
		s, err := route.ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	_, err := route.ParseStatus("planned")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, route.Cancelled.Validate())
	require.ErrorIs(t, route.Status("LOST").Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, route.Status("").Validate(), errs.ErrValueIsInvalid)
}
