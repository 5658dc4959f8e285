package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gojets/errs"
)

func TestKindSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want error
		kind errs.Kind
	}{
		{errs.Configf("op", "bad %s", "ring"), errs.ErrConfiguration, errs.Configuration},
		{errs.Dimensionf("op", "order %d", 4), errs.ErrDimensionMismatch, errs.DimensionMismatch},
		{errs.NoSmoothPointf("op", "none"), errs.ErrNoSmoothPointCandidate, errs.NoSmoothPoint},
		{errs.Enginef("op", "budget"), errs.ErrEngineFailure, errs.Engine},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.Equal(t, tt.kind, errs.KindOf(tt.err))
			for _, other := range []error{errs.ErrConfiguration, errs.ErrDimensionMismatch, errs.ErrNoSmoothPointCandidate, errs.ErrEngineFailure} {
				if other != tt.want {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestEngineErrKeepsCause(t *testing.T) {
	err := errs.EngineErr("algebra.Basis", context.Canceled)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrEngineFailure)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "algebra.Basis: EngineFailure: context canceled", err.Error())
}

func TestEngineErrPassesClassifiedErrors(t *testing.T) {
	inner := errs.Configf("algebra.Parse", "unexpected %q", ")")
	err := errs.EngineErr("algebra.Basis", fmt.Errorf("wrapped: %w", inner))
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	assert.NotErrorIs(t, err, errs.ErrEngineFailure)
	assert.Nil(t, errs.EngineErr("op", nil))
}

func TestErrorMessage(t *testing.T) {
	err := errs.Dimensionf("jets.HasseSchmidt", "order %d outside [0,%d]", 5, 2)
	assert.Equal(t, "jets.HasseSchmidt: DimensionMismatch: order 5 outside [0,2]", err.Error())
	assert.Equal(t, errs.Kind(0), errs.KindOf(errors.New("plain")))
	assert.Equal(t, "unknown", errs.Kind(0).String())
}
