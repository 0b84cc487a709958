package kernel_test

import (
	"testing"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    kernel.ID
		wantErr error
	}{
		{name: "positive", raw: "7", want: 7},
		{name: "large", raw: "9007199254740993", want: 9007199254740993},
		{name: "zero", raw: "0", wantErr: kernel.ErrIDIsNotAssigned},
		{name: "negative", raw: "-3", wantErr: errs.ErrValueIsInvalid},
		{name: "not a number", raw: "abc", wantErr: errs.ErrValueIsInvalid},
		{name: "empty", raw: "", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.ParseID(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_Helpers(t *testing.T) {
	id := kernel.ID(42)

	assert.True(t, id.IsAssigned())
	assert.False(t, kernel.ID(0).IsAssigned())
	assert.Equal(t, int64(42), id.Int64())
	assert.Equal(t, "42", id.String())
	require.NoError(t, id.Validate())
}
