package routerepo

import (
	"testing"
	"time"

	"routetracker/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDTORoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r, err := route.RestoreRoute(7, "North loop", "Ann", route.InProgress, at, at.Add(time.Minute))
	require.NoError(t, err)

	dto := fromDomain(r)
	assert.Equal(t, RouteDTO{
		ID:         7,
		Name:       "North loop",
		DriverName: "Ann",
		Status:     "IN_PROGRESS",
		CreatedAt:  at,
		UpdatedAt:  at.Add(time.Minute),
	}, dto)

	back, err := toDomain(dto)
	require.NoError(t, err)
	assert.Equal(t, r.ID(), back.ID())
	assert.Equal(t, r.Status(), back.Status())
}

func TestToDomain_RejectsUnknownStatus(t *testing.T) {
	_, err := toDomain(RouteDTO{ID: 1, Name: "n", DriverName: "d", Status: "PAUSED"})

	assert.Error(t, err)
}
