package route_test

import (
	"strings"
	"testing"
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	t.Run("should create planned route without identity", func(t *testing.T) {
		r, err := route.NewRoute("  North loop ", "Ann")

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, "North loop", r.Name())
		assert.Equal(t, "Ann", r.DriverName())
		assert.Equal(t, route.Planned, r.Status())
		assert.False(t, r.ID().IsAssigned())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		r, err := route.NewRoute("", strings.Repeat("x", 101))

		require.Error(t, err)
		assert.Nil(t, r)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "driver_name")
	})

	t.Run("should accept names at the length limit", func(t *testing.T) {
		r, err := route.NewRoute(strings.Repeat("ü", 100), "Bo")

		require.NoError(t, err)
		assert.Len(t, []rune(r.Name()), 100)
	})
}

func TestRestoreRoute(t *testing.T) {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("should rebuild persisted route", func(t *testing.T) {
		r, err := route.RestoreRoute(3, "North loop", "Ann", route.InProgress, created, updated)

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(3), r.ID())
		assert.Equal(t, route.InProgress, r.Status())
		assert.Equal(t, created, r.CreatedAt())
		assert.Equal(t, updated, r.UpdatedAt())
	})

	t.Run("should reject unknown status and missing id", func(t *testing.T) {
		_, err := route.RestoreRoute(0, "North loop", "Ann", route.Status("LOST"), created, updated)

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrIDIsNotAssigned)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoute_Validate(t *testing.T) {
	var nilRoute *route.Route
	assert.Equal(t, route.ErrRouteIsNotConstructed, nilRoute.Validate())

	var zero route.Route
	assert.Equal(t, route.ErrRouteIsNotConstructed, zero.Validate())
}

func TestRoute_ChangeStatus(t *testing.T) {
	t.Run("should follow the lifecycle", func(t *testing.T) {
		r, _ := route.NewRoute("North loop", "Ann")

		require.NoError(t, r.ChangeStatus(route.InProgress))
		require.NoError(t, r.ChangeStatus(route.Completed))
		assert.Equal(t, route.Completed, r.Status())
	})

	t.Run("should accept any known status from any status", func(t *testing.T) {
		all := []route.Status{route.Planned, route.InProgress, route.Completed, route.Cancelled}
		for _, from := range all {
			for _, to := range all {
				r, _ := route.NewRoute("North loop", "Ann")
				require.NoError(t, r.ChangeStatus(from))

				require.NoError(t, r.ChangeStatus(to), "%s -> %s", from, to)
				assert.Equal(t, to, r.Status())
			}
		}
	})

	t.Run("should reopen completed and cancelled routes", func(t *testing.T) {
		r, _ := route.NewRoute("North loop", "Ann")
		require.NoError(t, r.ChangeStatus(route.Completed))
		require.NoError(t, r.ChangeStatus(route.InProgress))
		require.NoError(t, r.ChangeStatus(route.Cancelled))

		require.NoError(t, r.ChangeStatus(route.Planned))
		assert.Equal(t, route.Planned, r.Status())
	})

	t.Run("should keep status on unknown value", func(t *testing.T) {
		r, _ := route.NewRoute("North loop", "Ann")
		require.NoError(t, r.ChangeStatus(route.Cancelled))

		err := r.ChangeStatus(route.Status("PAUSED"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, route.Cancelled, r.Status())
	})
}

func TestRoute_MarkPersisted(t *testing.T) {
	now := time.Now().UTC()
	r, _ := route.NewRoute("North loop", "Ann")

	require.NoError(t, r.MarkPersisted(5, now, now))
	assert.Equal(t, kernel.ID(5), r.ID())

	require.NoError(t, r.MarkPersisted(5, now, now.Add(time.Minute)))
	assert.Equal(t, now.Add(time.Minute), r.UpdatedAt())

	require.Error(t, r.MarkPersisted(6, now, now))
	require.Error(t, r.MarkPersisted(0, now, now))
}
