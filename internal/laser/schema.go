package laser

// Field describes one calculator input for form rendering.
type Field struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Bound    *Bound   `json:"bound,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// Schema describes a calculator's inputs.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

func ranged(name, unit string, b Bound) Field {
	return Field{Name: name, Unit: unit, Bound: &b}
}

// positive and nonNegative describe open-ended fields checked by
// checkPositive and checkNonNegative.
func positive(name, unit string) Field {
	return Field{Name: name, Unit: unit, Rule: "> 0"}
}

func nonNegative(name, unit string) Field {
	return Field{Name: name, Unit: unit, Rule: ">= 0"}
}

func optional(f Field) Field {
	f.Optional = true
	return f
}

func options[T ~string](name string, values []T) Field {
	opts := make([]string, len(values))
	for i, v := range values {
		opts[i] = string(v)
	}
	return Field{Name: name, Options: opts}
}

func keys[K ~string, V any](table map[K]V, order []K) []K {
	out := make([]K, 0, len(table))
	for _, k := range order {
		if _, ok := table[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Schemas lists every calculator with its inputs, keyed by the same names
// the HTTP layer routes on.
func Schemas() []Schema {
	return []Schema{
		{Name: "kerf", Fields: []Field{
			ranged("power_kw", "kW", kerfPowerKw),
			options("material", keys(kerfMaterialFactor, Materials)),
			ranged("thickness_mm", "mm", kerfThicknessMm),
			ranged("nozzle_diameter_mm", "mm", kerfNozzleDiameter),
			ranged("speed_mm_per_min", "mm/min", kerfSpeed),
		}},
		{Name: "power-density", Fields: []Field{
			ranged("power_w", "W", densityPowerW),
			ranged("spot_diameter_mm", "mm", densitySpotDiameter),
			optional(positive("wavelength_nm", "nm")),
			optional(ranged("m_squared", "", densityMSquared)),
		}},
		{Name: "chiller", Fields: []Field{
			options("laser_type", LaserTypes),
			ranged("laser_power_kw", "kW", chillerPowerKw),
			ranged("ambient_c", "°C", chillerAmbientC),
			ranged("duty_cycle_pct", "%", chillerDutyCyclePct),
			ranged("safety_factor", "", chillerSafetyFactor),
		}},
		{Name: "cost", Fields: []Field{
			positive("total_cut_length_m", "m"),
			positive("sheet_area_m2", "m²"),
			positive("thickness_mm", "mm"),
			options("material", keys(materialDensity, Materials)),
			positive("material_price_per_kg", "/kg"),
			positive("laser_power_kw", "kW"),
			positive("electrical_price_per_kwh", "/kWh"),
			{Name: "process_efficiency", Bound: &Bound{0.1, 1}},
			options("assist_gas", AssistGases),
			nonNegative("gas_price_per_m3", "/m³"),
			nonNegative("gas_flow_m3_per_h", "m³/h"),
			nonNegative("machine_price", ""),
			positive("machine_life_hours", "h"),
			nonNegative("labor_price_per_hour", "/h"),
			{Name: "operator_share", Bound: &Bound{0, 1}},
			positive("average_speed_mm_per_min", "mm/min"),
			optional(nonNegative("piercing_time_per_hole_sec", "s")),
			optional(nonNegative("holes_count", "")),
		}},
		{Name: "nozzle-life", Fields: []Field{
			options("nozzle_material", NozzleMaterials),
			options("nozzle_type", NozzleTypes),
			options("cutting_material", keys(nozzleMaterialWear, Materials)),
			ranged("thickness_mm", "mm", nozzleThicknessMm),
			ranged("power_kw", "kW", nozzlePowerKw),
			ranged("daily_hours", "h", nozzleDailyHours),
			options("assist_gas", AssistGases),
		}},
	}
}
