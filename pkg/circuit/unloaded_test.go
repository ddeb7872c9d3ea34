package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnloaded(t *testing.T) {
	p := Default()

	tests := []struct {
		vc       float64
		wantVo   float64
		wantCode int
	}{
		{vc: 0.25, wantVo: 3.1547619, wantCode: 20},
		{vc: 0.5, wantVo: 3.1666667, wantCode: 40},
		{vc: 1.0, wantVo: 3.1904762, wantCode: 80},
		{vc: 2.5, wantVo: 3.2619048, wantCode: 195},
	}
	for _, tt := range tests {
		got, err := p.Unloaded(tt.vc)
		require.NoError(t, err)
		assert.InDelta(t, tt.wantVo, got.Output, 1e-6, "Vo for %gV", tt.vc)
		assert.Equal(t, tt.wantCode, got.Code, "code for %gV", tt.vc)
		assert.InDelta(t, float64(tt.wantCode)/255*100, got.Percent, 1e-9)
		assert.False(t, got.Clamped)
	}
}

func TestUnloadedBoundaries(t *testing.T) {
	p := Default()
	v := p.Values()

	vo, err := p.UnloadedOutput(0)
	require.NoError(t, err)
	assert.InDelta(t, v.Vdd*v.Rs/(v.Ri+v.Rs), vo, 1e-12)

	d, err := p.UnloadedDuty(0)
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	vo, err = p.UnloadedOutput(v.Vdd)
	require.NoError(t, err)
	assert.InDelta(t, v.Vdd, vo, 1e-12)

	d, err = p.UnloadedDuty(v.Vdd)
	require.NoError(t, err)
	assert.Equal(t, MaxDutyCode, d)
}

func TestUnloadedMonotonic(t *testing.T) {
	p := Default()

	prevVo, prevD := -1.0, -1
	for i := 0; i <= 330; i++ {
		vc := float64(i) / 100
		vo, err := p.UnloadedOutput(vc)
		require.NoError(t, err)
		d, err := p.UnloadedDuty(vc)
		require.NoError(t, err)

		assert.Greater(t, vo, prevVo, "Vo at %gV", vc)
		assert.GreaterOrEqual(t, d, prevD, "d at %gV", vc)
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, MaxDutyCode)
		prevVo, prevD = vo, d
	}
}

func TestUnloadedOutOfRange(t *testing.T) {
	p := Default()

	for _, vc := range []float64{-0.01, 3.31, 5} {
		_, err := p.Unloaded(vc)
		assert.ErrorIs(t, err, ErrVoltageOutOfRange, "%gV", vc)
	}
}
