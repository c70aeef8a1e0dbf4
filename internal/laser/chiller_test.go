package laser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseChillerInput() ChillerInput {
	return ChillerInput{
		LaserType:    Fiber,
		LaserPowerKw: 6,
		AmbientC:     25,
		DutyCyclePct: 70,
		SafetyFactor: 1.2,
	}
}

func TestCalculateChillerFiberSixKilowatt(t *testing.T) {
	out, err := CalculateChiller(baseChillerInput())
	require.NoError(t, err)

	// base = 6 * 0.35 * 0.7 * 1.0 = 1.47
	assert.Equal(t, 1.76, out.CoolingCapacityKw)
	assert.Equal(t, 1514.0, out.CoolingCapacityKcalPerH)
	assert.InDelta(t, 6.615, out.SuggestedFlowLpm, 0.0051)
}

func TestCalculateChillerAmbientAdjustmentIsClamped(t *testing.T) {
	hot := ChillerInput{LaserType: CO2, LaserPowerKw: 10, AmbientC: 45, DutyCyclePct: 100, SafetyFactor: 1.5}
	out, err := CalculateChiller(hot)
	require.NoError(t, err)

	// (45-25)*0.015 = 0.3 is capped at +0.25: base = 10 * 1.2 * 1.25 = 15
	assert.InDelta(t, 22.5, out.CoolingCapacityKw, 1e-9)
	assert.InDelta(t, 19350, out.CoolingCapacityKcalPerH, 1e-9)
	assert.InDelta(t, 67.5, out.SuggestedFlowLpm, 1e-9)

	cold := hot
	cold.AmbientC = 10
	out, err = CalculateChiller(cold)
	require.NoError(t, err)

	// (10-25)*0.015 = -0.225 is floored at -0.1: base = 12 * 0.9 = 10.8
	assert.InDelta(t, 16.2, out.CoolingCapacityKw, 1e-9)
	assert.InDelta(t, 48.6, out.SuggestedFlowLpm, 1e-9)
}

func TestCalculateChillerKcalMatchesRoundedKilowatts(t *testing.T) {
	for _, lt := range LaserTypes {
		for p := 1.0; p <= 30; p += 2.5 {
			in := ChillerInput{LaserType: lt, LaserPowerKw: p, AmbientC: 31, DutyCyclePct: 85, SafetyFactor: 1.15}
			out, err := CalculateChiller(in)
			require.NoError(t, err)

			assert.Equal(t, math.Round(out.CoolingCapacityKw*860), out.CoolingCapacityKcalPerH, "%s %.1f kW", lt, p)
			assert.Greater(t, out.SuggestedFlowLpm, 0.0)
		}
	}
}

func TestCalculateChillerLaserTypeOrdering(t *testing.T) {
	capacity := map[LaserType]float64{}
	for _, lt := range LaserTypes {
		in := baseChillerInput()
		in.LaserType = lt
		out, err := CalculateChiller(in)
		require.NoError(t, err)
		capacity[lt] = out.CoolingCapacityKw
	}

	assert.Less(t, capacity[Fiber], capacity[SolidState])
	assert.Less(t, capacity[SolidState], capacity[CO2])
}

func TestCalculateChillerRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		field string
		set   func(*ChillerInput, float64)
		b     Bound
	}{
		{"laser_power_kw", func(in *ChillerInput, v float64) { in.LaserPowerKw = v }, chillerPowerKw},
		{"ambient_c", func(in *ChillerInput, v float64) { in.AmbientC = v }, chillerAmbientC},
		{"duty_cycle_pct", func(in *ChillerInput, v float64) { in.DutyCyclePct = v }, chillerDutyCyclePct},
		{"safety_factor", func(in *ChillerInput, v float64) { in.SafetyFactor = v }, chillerSafetyFactor},
	}

	for _, tc := range tests {
		for _, v := range outside(tc.b) {
			in := baseChillerInput()
			tc.set(&in, v)

			out, err := CalculateChiller(in)
			assertValidationError(t, err, tc.field)
			assert.Equal(t, ChillerOutput{}, out)
		}
	}

	in := baseChillerInput()
	in.LaserType = "diode"
	_, err := CalculateChiller(in)
	assertValidationError(t, err, "laser_type")
}
