package efficiency

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSaturationVaporPressure(t *testing.T) {
	tests := []struct {
		theta float64
		p_vs  float64
	}{
		{0.0, 0.6108},
		{20.0, 2.3382},
		{25.0, 3.1676},
		{100.0, 102.1972},
	}

	for _, test := range tests {
		p_vs, err := SaturationVaporPressure(test.theta)
		require.NoError(t, err)
		assert.InDelta(t, test.p_vs, p_vs, 1e-4, "theta=%v", test.theta)
	}
}

func TestSaturationVaporPressureIncreasing(t *testing.T) {
	prev, err := SaturationVaporPressure(-20)
	require.NoError(t, err)
	assert.Greater(t, prev, 0.0)

	for theta := -19.5; theta <= 50.0; theta += 0.5 {
		p_vs, err := SaturationVaporPressure(theta)
		require.NoError(t, err)
		assert.Greater(t, p_vs, prev, "theta=%v", theta)
		prev = p_vs
	}
}

func TestSaturationVaporPressureDomain(t *testing.T) {
	for _, theta := range []float64{-237.3, -250.0} {
		_, err := SaturationVaporPressure(theta)

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "temperature", de.Quantity)
		assert.True(t, errors.Is(err, ErrDomain))
	}
}

func TestSpecificHumidity(t *testing.T) {
	tests := []struct {
		h     float64
		theta float64
		x     float64
	}{
		{50.0, 25.0, 9.8768},
		{40.0, 18.0, 5.1095},
		{0.0, 30.0, 0.0},
	}

	for _, test := range tests {
		x, err := SpecificHumidity(test.h, test.theta)
		require.NoError(t, err)
		assert.InDelta(t, test.x, x, 1e-4, "h=%v theta=%v", test.h, test.theta)
	}
}

func TestSpecificHumidityDomain(t *testing.T) {
	// 100 degC の飽和水蒸気圧は大気圧を超える
	_, err := SpecificHumidity(100, 100)

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "vapor pressure", de.Quantity)

	_, err = SpecificHumidity(50, -300)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestVaporPressureRoundTrip(t *testing.T) {
	thetas := []float64{10, 18, 25, 32}
	hs := []float64{30, 40, 50, 80}

	x_is := mat.NewVecDense(len(thetas), nil)
	want := make([]float64, len(thetas))
	for i := range thetas {
		x, err := SpecificHumidity(hs[i], thetas[i])
		require.NoError(t, err)
		x_is.SetVec(i, x)

		p_vs, err := SaturationVaporPressure(thetas[i])
		require.NoError(t, err)
		want[i] = hs[i] / 100 * p_vs
	}

	p_v_is := VaporPressures(x_is)
	require.Len(t, p_v_is, len(thetas))
	for i := range p_v_is {
		assert.InDelta(t, want[i], p_v_is[i], 1e-9)
	}
}
