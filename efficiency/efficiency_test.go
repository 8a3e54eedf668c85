package efficiency

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() MeasurementInput {
	return MeasurementInput{
		Airflow:     1000,
		AirflowUnit: AirflowM3h,
		TempIn:      25,
		TempOut:     18,
		RHIn:        50,
		RHOut:       40,
		Power:       1500,
		PowerUnit:   PowerW,
	}
}

func TestComputeEfficiencyScenarioA(t *testing.T) {
	r, err := ComputeEfficiency(scenarioA())
	require.NoError(t, err)

	assert.InDelta(t, 0.3333, r.MassFlowRateKgS, 1e-4)
	assert.InDelta(t, 7.0, r.DeltaT, 1e-12)
	assert.InDelta(t, 2345.0, r.SensibleCapacityW, 0.5)
	assert.InDelta(t, 3972.76, r.LatentCapacityW, 0.01)
	assert.InDelta(t, 6317.76, r.TotalCapacityW, 0.01)
	assert.InDelta(t, 4.2118, r.COP, 1e-4)
	assert.InDelta(t, 14.3708, r.EER, 1e-4)
	assert.Greater(t, r.COP, 0.0)
}

func TestComputeEfficiencyTotalIsExactSum(t *testing.T) {
	inputs := []MeasurementInput{
		scenarioA(),
		{Airflow: 600, AirflowUnit: AirflowCFM, TempIn: 27.3, TempOut: 12.1, RHIn: 65, RHOut: 90, Power: 9000, PowerUnit: PowerBTUh},
		{Airflow: 250, AirflowUnit: AirflowM3h, TempIn: 15, TempOut: 30, RHIn: 20, RHOut: 10, Power: 700, PowerUnit: PowerW},
	}

	for _, in := range inputs {
		r, err := ComputeEfficiency(in)
		require.NoError(t, err)
		assert.Equal(t, r.SensibleCapacityW+r.LatentCapacityW, r.TotalCapacityW)
		assert.Equal(t, r.TotalCapacityW/r.PowerW, r.COP)
		assert.Equal(t, r.COP*3.412, r.EER)
	}
}

func TestComputeEfficiencyDeterministic(t *testing.T) {
	first, err := ComputeEfficiency(scenarioA())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		r, err := ComputeEfficiency(scenarioA())
		require.NoError(t, err)
		assert.Equal(t, first, r)
	}
}

func TestComputeEfficiencyImperialUnits(t *testing.T) {
	imperial := scenarioA()
	imperial.Airflow = 600
	imperial.AirflowUnit = AirflowCFM
	imperial.Power = 10000
	imperial.PowerUnit = PowerBTUh

	cfm, btuh := 600.0, 10000.0
	direct := scenarioA()
	direct.Airflow = cfm * 1.699
	direct.Power = btuh / 3.412

	ri, err := ComputeEfficiency(imperial)
	require.NoError(t, err)
	rd, err := ComputeEfficiency(direct)
	require.NoError(t, err)

	assert.InDelta(t, 1019.4, ri.AirflowM3h, 1e-9)
	assert.InDelta(t, 2930.83, ri.PowerW, 0.01)
	assert.Equal(t, rd, ri)
}

func TestComputeEfficiencyZeroPower(t *testing.T) {
	in := scenarioA()
	in.Power = 0

	r, err := ComputeEfficiency(in)

	var dz *DivisionByZeroError
	require.ErrorAs(t, err, &dz)
	assert.Equal(t, FieldPowerInput, dz.Field)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	assert.Equal(t, EfficiencyResult{}, r)
}

func TestComputeEfficiencyEqualTemperatures(t *testing.T) {
	in := scenarioA()
	in.TempIn = 22
	in.TempOut = 22
	in.RHIn = 60

	r, err := ComputeEfficiency(in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.DeltaT)
	assert.Equal(t, 0.0, r.SensibleCapacityW)
	assert.Equal(t, r.LatentCapacityW, r.TotalCapacityW)
	assert.InDelta(t, 2776.89, r.TotalCapacityW, 0.01)
}

func TestComputeEfficiencyHeatingIsNegative(t *testing.T) {
	in := scenarioA()
	in.TempIn, in.TempOut = 18, 25
	in.RHIn, in.RHOut = 40, 50

	r, err := ComputeEfficiency(in)
	require.NoError(t, err)
	assert.Less(t, r.SensibleCapacityW, 0.0)
	assert.Less(t, r.TotalCapacityW, 0.0)
	assert.Less(t, r.COP, 0.0)
}

func TestComputeEfficiencyDomainErrorPropagates(t *testing.T) {
	in := scenarioA()
	in.TempOut = 100
	in.RHOut = 100

	_, err := ComputeEfficiency(in)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestCompute(t *testing.T) {
	r, err := Compute(RawMeasurement{
		Airflow:     "600",
		AirflowUnit: "CFM",
		TempIn:      "25",
		TempOut:     "18",
		RHIn:        "50",
		RHOut:       "40",
		Power:       "10000",
		PowerUnit:   "BTU/h",
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.1974, r.COP, 1e-4)
}

func TestRounded(t *testing.T) {
	r, err := ComputeEfficiency(scenarioA())
	require.NoError(t, err)

	rr := r.Rounded()
	assert.Equal(t, 2345.0, rr.SensibleCapacityW)
	assert.Equal(t, 3972.76, rr.LatentCapacityW)
	assert.Equal(t, 4.21, rr.COP)
	assert.Equal(t, 0.3333, rr.MassFlowRateKgS)
}

func TestFormatResult(t *testing.T) {
	r, err := ComputeEfficiency(scenarioA())
	require.NoError(t, err)

	assert.Equal(t,
		"Sensible capacity: 2345.00 W\n"+
			"Latent capacity: 3972.76 W\n"+
			"Total capacity: 6317.76 W\n"+
			"COP: 4.21\n"+
			"EER: 14.37\n",
		FormatResult(r))
}

func TestManualCalculation(t *testing.T) {
	r, err := ComputeEfficiency(scenarioA())
	require.NoError(t, err)

	text := ManualCalculation(r)
	for _, want := range []string{
		"1. Mass flow rate:",
		"(1000.00 / 3600) x 1.2 = 0.3333 kg/s",
		"0.3333 x 1.005 x 7.00 x 1000 = 2345.00 W",
		"Q_latent = 0.3333 x 2500 x ((9.8768 - 5.1095) / 1000) x 1000 = 3972.76 W",
		"Q_total = 2345.00 + 3972.76 = 6317.76 W",
		"COP = 6317.76 / 1500.00 = 4.21",
	} {
		assert.True(t, strings.Contains(text, want), "missing %q in\n%s", want, text)
	}
}
