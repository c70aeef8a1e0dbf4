package laser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCostInput() CostInput {
	return CostInput{
		TotalCutLengthM:       100,
		SheetAreaM2:           1,
		ThicknessMm:           2,
		Material:              CarbonSteel,
		MaterialPricePerKg:    5,
		LaserPowerKw:          3,
		ElectricalPricePerKwh: 1,
		ProcessEfficiency:     0.8,
		AssistGas:             Nitrogen,
		GasPricePerM3:         0,
		GasFlowM3PerH:         10,
		MachinePrice:          0,
		MachineLifeHours:      20000,
		LaborPricePerHour:     60,
		OperatorShare:         0.5,
		AverageSpeedMmPerMin:  5000,
	}
}

func TestEstimateCostWithoutGasOrDepreciation(t *testing.T) {
	out, err := EstimateCost(baseCostInput())
	require.NoError(t, err)

	// 100 m at 5000 mm/min = 20 min = 1/3 h
	assert.InDelta(t, 20, out.ProcessingTimeMin, 1e-9)
	// 1 m² x 2 mm x 7.85 g/cm³ = 15.7 kg at 5/kg
	assert.InDelta(t, 78.5, out.MaterialCost, 1e-9)
	assert.InDelta(t, 0.8, out.ElectricityCost, 1e-9)
	assert.Zero(t, out.GasCost)
	assert.Zero(t, out.DepreciationCost)
	assert.InDelta(t, 10, out.LaborCost, 1e-9)
	assert.InDelta(t, out.MaterialCost+out.ElectricityCost+out.LaborCost, out.TotalCost, 1e-9)

	assert.InDelta(t, 87.91, out.BreakdownPct.Material, 1e-9)
	assert.InDelta(t, 0.90, out.BreakdownPct.Electricity, 1e-9)
	assert.InDelta(t, 11.20, out.BreakdownPct.Labor, 1e-9)
	assert.Zero(t, out.BreakdownPct.Gas)
	assert.Zero(t, out.BreakdownPct.Depreciation)
}

func TestEstimateCostComponentsAddUp(t *testing.T) {
	in := baseCostInput()
	in.Material = StainlessSteel
	in.GasPricePerM3 = 3.7
	in.GasFlowM3PerH = 18
	in.MachinePrice = 850000
	in.MachineLifeHours = 40000
	in.PiercingTimePerHoleSec = ptr(1.5)
	in.HolesCount = ptr(120)
	in.AverageSpeedMmPerMin = 3333

	out, err := EstimateCost(in)
	require.NoError(t, err)

	sum := out.MaterialCost + out.ElectricityCost + out.GasCost + out.DepreciationCost + out.LaborCost
	assert.InDelta(t, out.TotalCost, sum, 0.01)

	pct := out.BreakdownPct
	assert.InDelta(t, 100, pct.Material+pct.Electricity+pct.Gas+pct.Depreciation+pct.Labor, 0.05)
	assert.Greater(t, out.GasCost, 0.0)
	assert.Greater(t, out.DepreciationCost, 0.0)
}

func TestEstimateCostRoundsOnlyOnReturn(t *testing.T) {
	in := baseCostInput()
	in.TotalCutLengthM = 300
	in.ThicknessMm = 1
	in.MaterialPricePerKg = 1
	in.LaserPowerKw = 0.001
	in.GasPricePerM3 = 0.004
	in.GasFlowM3PerH = 1
	in.LaborPricePerHour = 0.004
	in.OperatorShare = 1

	out, err := EstimateCost(in)
	require.NoError(t, err)

	// 7.85 + 0.0008 + 0.004 + 0.004 = 7.8588; the small terms round to 0
	// individually but still count towards the total.
	assert.InDelta(t, 7.85, out.MaterialCost, 1e-9)
	assert.Zero(t, out.ElectricityCost)
	assert.Zero(t, out.GasCost)
	assert.Zero(t, out.LaborCost)
	assert.InDelta(t, 7.86, out.TotalCost, 1e-9)

	assert.InDelta(t, 99.89, out.BreakdownPct.Material, 1e-9)
	assert.InDelta(t, 0.05, out.BreakdownPct.Gas, 1e-9)
	assert.InDelta(t, 0.05, out.BreakdownPct.Labor, 1e-9)
	assert.InDelta(t, 0.01, out.BreakdownPct.Electricity, 1e-9)
}

func TestEstimateCostRejectsOverflow(t *testing.T) {
	tests := []struct {
		name  string
		field string
		mut   func(*CostInput)
	}{
		{"processing time", "total_cut_length_m", func(in *CostInput) {
			in.TotalCutLengthM = 1e306
			in.AverageSpeedMmPerMin = 1e-6
		}},
		{"sheet mass", "sheet_area_m2", func(in *CostInput) {
			in.SheetAreaM2 = 1e306
			in.ThicknessMm = 1e306
		}},
		{"material cost", "material_price_per_kg", func(in *CostInput) {
			in.SheetAreaM2 = 1e300
			in.MaterialPricePerKg = 1e300
		}},
		{"labor cost", "labor_price_per_hour", func(in *CostInput) {
			in.LaborPricePerHour = 1e308
			in.TotalCutLengthM = 1e6
		}},
		{"total", "machine_price", func(in *CostInput) {
			in.SheetAreaM2 = 1
			in.MaterialPricePerKg = 1e307
			in.MachinePrice = 1.7e308
			in.MachineLifeHours = 1
			in.TotalCutLengthM = 300
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := baseCostInput()
			tc.mut(&in)

			out, err := EstimateCost(in)
			assertValidationError(t, err, tc.field)
			assert.Contains(t, err.Error(), "overflows")
			assert.Equal(t, CostOutput{}, out)
		})
	}
}

func TestEstimateCostPiercingTimeExtendsProcessing(t *testing.T) {
	in := baseCostInput()
	in.PiercingTimePerHoleSec = ptr(2.0)
	in.HolesCount = ptr(30)

	out, err := EstimateCost(in)
	require.NoError(t, err)
	assert.InDelta(t, 21, out.ProcessingTimeMin, 1e-9)

	// Either optional field alone contributes nothing.
	in.HolesCount = nil
	out, err = EstimateCost(in)
	require.NoError(t, err)
	assert.InDelta(t, 20, out.ProcessingTimeMin, 1e-9)
}

func TestEstimateCostClampsEfficiencyAndOperatorShare(t *testing.T) {
	in := baseCostInput()
	in.ProcessEfficiency = 5
	in.OperatorShare = 2

	out, err := EstimateCost(in)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.ElectricityCost, 1e-9)
	assert.InDelta(t, 20, out.LaborCost, 1e-9)

	in.ProcessEfficiency = 0
	in.OperatorShare = -1
	out, err = EstimateCost(in)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, out.ElectricityCost, 1e-9)
	assert.Zero(t, out.LaborCost)
}

func TestEstimateCostZeroTotalHasZeroBreakdown(t *testing.T) {
	in := baseCostInput()
	in.SheetAreaM2 = 1e-6
	in.ThicknessMm = 0.001
	in.MaterialPricePerKg = 0.01
	in.TotalCutLengthM = 0.001
	in.AverageSpeedMmPerMin = 20000
	in.LaserPowerKw = 0.001

	out, err := EstimateCost(in)
	require.NoError(t, err)
	assert.Zero(t, out.TotalCost)
	assert.Equal(t, CostBreakdown{}, out.BreakdownPct)
}

func TestEstimateCostValidation(t *testing.T) {
	tests := []struct {
		field string
		mut   func(*CostInput)
	}{
		{"total_cut_length_m", func(in *CostInput) { in.TotalCutLengthM = 0 }},
		{"sheet_area_m2", func(in *CostInput) { in.SheetAreaM2 = -1 }},
		{"thickness_mm", func(in *CostInput) { in.ThicknessMm = 0 }},
		{"material_price_per_kg", func(in *CostInput) { in.MaterialPricePerKg = 0 }},
		{"laser_power_kw", func(in *CostInput) { in.LaserPowerKw = 0 }},
		{"electrical_price_per_kwh", func(in *CostInput) { in.ElectricalPricePerKwh = 0 }},
		{"gas_price_per_m3", func(in *CostInput) { in.GasPricePerM3 = -0.01 }},
		{"gas_flow_m3_per_h", func(in *CostInput) { in.GasFlowM3PerH = -0.01 }},
		{"machine_price", func(in *CostInput) { in.MachinePrice = -1 }},
		{"machine_life_hours", func(in *CostInput) { in.MachineLifeHours = 0 }},
		{"labor_price_per_hour", func(in *CostInput) { in.LaborPricePerHour = -1 }},
		{"average_speed_mm_per_min", func(in *CostInput) { in.AverageSpeedMmPerMin = 0 }},
		{"piercing_time_per_hole_sec", func(in *CostInput) { in.PiercingTimePerHoleSec = ptr(-1.0) }},
		{"holes_count", func(in *CostInput) { in.HolesCount = ptr(-3) }},
		{"material", func(in *CostInput) { in.Material = Brass }},
		{"assist_gas", func(in *CostInput) { in.AssistGas = "argon" }},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			in := baseCostInput()
			tc.mut(&in)

			out, err := EstimateCost(in)
			assertValidationError(t, err, tc.field)
			assert.Equal(t, CostOutput{}, out)
		})
	}
}
