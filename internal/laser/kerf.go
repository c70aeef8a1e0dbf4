package laser

import "math"

// KerfInput describes a cut for kerf estimation.
type KerfInput struct {
	PowerKw          float64  `json:"power_kw"`
	Material         Material `json:"material"`
	ThicknessMm      float64  `json:"thickness_mm"`
	NozzleDiameterMm float64  `json:"nozzle_diameter_mm"`
	SpeedMmPerMin    float64  `json:"speed_mm_per_min"`
}

// KerfOutput is the estimated slot width and the layout allowances that
// follow from it.
type KerfOutput struct {
	KerfMm               float64 `json:"kerf_mm"`
	CompensationMm       float64 `json:"compensation_mm"`
	RecommendedSpacingMm float64 `json:"recommended_spacing_mm"`
	// UtilizationImpactPct is the sheet utilisation lost to part spacing,
	// expressed as a negative percentage no lower than -20.
	UtilizationImpactPct float64 `json:"utilization_impact_pct"`
}

var kerfMaterialFactor = map[Material]float64{
	CarbonSteel:    1.00,
	StainlessSteel: 1.15,
	Aluminum:       1.25,
	Copper:         1.30,
	Brass:          1.20,
}

// Calibration constants for the empirical kerf fit.
const (
	kerfInfluenceGain = 0.12
	kerfMinRatio      = 0.8
	kerfMaxRatio      = 2.2
	kerfSpacingRatio  = 1.5
	minPartSpacingMm  = 0.5
	maxUtilizationPct = 20
)

var (
	kerfPowerKw        = Bound{0.5, 30}
	kerfThicknessMm    = Bound{0.5, 50}
	kerfNozzleDiameter = Bound{0.8, 5.0}
	kerfSpeed          = Bound{100, 20000}
)

func (in KerfInput) validate() error {
	if _, ok := kerfMaterialFactor[in.Material]; !ok {
		return unknownVariant("material", string(in.Material))
	}
	return firstError(
		kerfPowerKw.check("power_kw", in.PowerKw),
		kerfThicknessMm.check("thickness_mm", in.ThicknessMm),
		kerfNozzleDiameter.check("nozzle_diameter_mm", in.NozzleDiameterMm),
		kerfSpeed.check("speed_mm_per_min", in.SpeedMmPerMin),
	)
}

// CalculateKerf estimates the kerf for the given cut. The result is bounded
// to [0.8, 2.2] times the nozzle bore.
func CalculateKerf(in KerfInput) (KerfOutput, error) {
	if err := in.validate(); err != nil {
		return KerfOutput{}, err
	}

	// Energy delivered per unit of cut cross-section and feed.
	influence := (in.PowerKw * 1000) / (in.ThicknessMm * math.Max(in.SpeedMmPerMin, 1))

	raw := in.NozzleDiameterMm + influence*kerfMaterialFactor[in.Material]*kerfInfluenceGain
	kerf := clamp(raw, in.NozzleDiameterMm*kerfMinRatio, in.NozzleDiameterMm*kerfMaxRatio)

	spacing := math.Max(kerf*kerfSpacingRatio, minPartSpacingMm)
	impact := math.Min(maxUtilizationPct, math.Max(0, (spacing-minPartSpacingMm)*3))

	return KerfOutput{
		KerfMm:               round(kerf, 3),
		CompensationMm:       round(kerf/2, 3),
		RecommendedSpacingMm: round(spacing, 3),
		UtilizationImpactPct: 0 - round(impact, 2),
	}, nil
}
