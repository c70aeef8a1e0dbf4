package laser

// CostInput collects the job, material, utility and machine parameters of a
// cutting cost estimate. Prices are in the caller's currency.
type CostInput struct {
	TotalCutLengthM       float64   `json:"total_cut_length_m"`
	SheetAreaM2           float64   `json:"sheet_area_m2"`
	ThicknessMm           float64   `json:"thickness_mm"`
	Material              Material  `json:"material"`
	MaterialPricePerKg    float64   `json:"material_price_per_kg"`
	LaserPowerKw          float64   `json:"laser_power_kw"`
	ElectricalPricePerKwh float64   `json:"electrical_price_per_kwh"`
	ProcessEfficiency     float64   `json:"process_efficiency"`
	AssistGas             AssistGas `json:"assist_gas"`
	GasPricePerM3         float64   `json:"gas_price_per_m3"`
	GasFlowM3PerH         float64   `json:"gas_flow_m3_per_h"`
	MachinePrice          float64   `json:"machine_price"`
	MachineLifeHours      float64   `json:"machine_life_hours"`
	LaborPricePerHour     float64   `json:"labor_price_per_hour"`
	OperatorShare         float64   `json:"operator_share"`
	AverageSpeedMmPerMin  float64   `json:"average_speed_mm_per_min"`

	PiercingTimePerHoleSec *float64 `json:"piercing_time_per_hole_sec,omitempty"`
	HolesCount             *int     `json:"holes_count,omitempty"`
}

type CostOutput struct {
	ProcessingTimeMin float64       `json:"processing_time_min"`
	MaterialCost      float64       `json:"material_cost"`
	ElectricityCost   float64       `json:"electricity_cost"`
	GasCost           float64       `json:"gas_cost"`
	DepreciationCost  float64       `json:"depreciation_cost"`
	LaborCost         float64       `json:"labor_cost"`
	TotalCost         float64       `json:"total_cost"`
	BreakdownPct      CostBreakdown `json:"breakdown_pct"`
}

// CostBreakdown holds each cost component as a percentage of the total.
// All fields are zero when the total is zero.
type CostBreakdown struct {
	Material     float64 `json:"material"`
	Electricity  float64 `json:"electricity"`
	Gas          float64 `json:"gas"`
	Depreciation float64 `json:"depreciation"`
	Labor        float64 `json:"labor"`
}

// Density in g/cm³.
var materialDensity = map[Material]float64{
	CarbonSteel:    7.85,
	StainlessSteel: 7.90,
	Aluminum:       2.70,
	Copper:         8.96,
}

func (in CostInput) validate() error {
	if _, ok := materialDensity[in.Material]; !ok {
		return unknownVariant("material", string(in.Material))
	}
	if !in.AssistGas.Valid() {
		return unknownVariant("assist_gas", string(in.AssistGas))
	}
	errs := []error{
		checkPositive("total_cut_length_m", in.TotalCutLengthM),
		checkPositive("sheet_area_m2", in.SheetAreaM2),
		checkPositive("thickness_mm", in.ThicknessMm),
		checkPositive("material_price_per_kg", in.MaterialPricePerKg),
		checkPositive("laser_power_kw", in.LaserPowerKw),
		checkPositive("electrical_price_per_kwh", in.ElectricalPricePerKwh),
		checkFinite("process_efficiency", in.ProcessEfficiency),
		checkNonNegative("gas_price_per_m3", in.GasPricePerM3),
		checkNonNegative("gas_flow_m3_per_h", in.GasFlowM3PerH),
		checkNonNegative("machine_price", in.MachinePrice),
		checkPositive("machine_life_hours", in.MachineLifeHours),
		checkNonNegative("labor_price_per_hour", in.LaborPricePerHour),
		checkFinite("operator_share", in.OperatorShare),
		checkPositive("average_speed_mm_per_min", in.AverageSpeedMmPerMin),
	}
	if in.PiercingTimePerHoleSec != nil {
		errs = append(errs, checkNonNegative("piercing_time_per_hole_sec", *in.PiercingTimePerHoleSec))
	}
	if in.HolesCount != nil {
		errs = append(errs, checkNonNegative("holes_count", float64(*in.HolesCount)))
	}
	return firstError(errs...)
}

// ProcessingTimeMin is the beam-on time of the job: travel along the cut
// path plus piercing.
func (in CostInput) ProcessingTimeMin() float64 {
	minutes := (in.TotalCutLengthM * 1000) / in.AverageSpeedMmPerMin

	var pierceSec float64
	if in.PiercingTimePerHoleSec != nil {
		pierceSec = *in.PiercingTimePerHoleSec
	}
	var holes int
	if in.HolesCount != nil {
		holes = *in.HolesCount
	}
	return minutes + (pierceSec*float64(holes))/60
}

// costComponent is one unrounded cost term and the input that scales it.
type costComponent struct {
	value float64
	field string
	input float64
}

// EstimateCost prices a cutting job. Components, total and percentages are
// computed unrounded and rounded only on return. Inputs that pass validation
// but overflow float64 are rejected on the field that drives the overflow.
func EstimateCost(in CostInput) (CostOutput, error) {
	if err := in.validate(); err != nil {
		return CostOutput{}, err
	}

	minutes := in.ProcessingTimeMin()
	if err := checkResult("total_cut_length_m", in.TotalCutLengthM, minutes); err != nil {
		return CostOutput{}, err
	}
	hours := minutes / 60

	volumeM3 := in.SheetAreaM2 * (in.ThicknessMm / 1000)
	massKg := volumeM3 * materialDensity[in.Material] * 1000
	if err := checkResult("sheet_area_m2", in.SheetAreaM2, massKg); err != nil {
		return CostOutput{}, err
	}

	parts := [5]costComponent{
		{massKg * in.MaterialPricePerKg, "material_price_per_kg", in.MaterialPricePerKg},
		{in.LaserPowerKw * hours * in.ElectricalPricePerKwh * clamp(in.ProcessEfficiency, 0.1, 1), "laser_power_kw", in.LaserPowerKw},
		{in.GasFlowM3PerH * hours * in.GasPricePerM3, "gas_flow_m3_per_h", in.GasFlowM3PerH},
		{(in.MachinePrice / in.MachineLifeHours) * hours, "machine_price", in.MachinePrice},
		{in.LaborPricePerHour * hours * clamp(in.OperatorShare, 0, 1), "labor_price_per_hour", in.LaborPricePerHour},
	}

	var total float64
	largest := parts[0]
	for _, p := range parts {
		if err := checkResult(p.field, p.input, p.value); err != nil {
			return CostOutput{}, err
		}
		total += p.value
		if p.value > largest.value {
			largest = p
		}
	}
	if err := checkResult(largest.field, largest.input, total); err != nil {
		return CostOutput{}, err
	}

	roundedTotal := round(total, 2)
	pct := func(part float64) float64 {
		if roundedTotal == 0 {
			return 0
		}
		return round(part/total*100, 2)
	}

	return CostOutput{
		ProcessingTimeMin: round(minutes, 2),
		MaterialCost:      round(parts[0].value, 2),
		ElectricityCost:   round(parts[1].value, 2),
		GasCost:           round(parts[2].value, 2),
		DepreciationCost:  round(parts[3].value, 2),
		LaborCost:         round(parts[4].value, 2),
		TotalCost:         roundedTotal,
		BreakdownPct: CostBreakdown{
			Material:     pct(parts[0].value),
			Electricity:  pct(parts[1].value),
			Gas:          pct(parts[2].value),
			Depreciation: pct(parts[3].value),
			Labor:        pct(parts[4].value),
		},
	}, nil
}
