package laser

import "math"

// PowerDensityInput describes a focused beam.
type PowerDensityInput struct {
	PowerW         float64 `json:"power_w"`
	SpotDiameterMm float64 `json:"spot_diameter_mm"`
	// WavelengthNm and MSquared are optional. Both are range checked when
	// present but do not enter the formulas yet.
	WavelengthNm *float64 `json:"wavelength_nm,omitempty"`
	MSquared     *float64 `json:"m_squared,omitempty"`
}

type PowerDensityOutput struct {
	SpotAreaMm2          float64     `json:"spot_area_mm2"`
	PowerDensityWPerMm2  float64     `json:"power_density_w_per_mm2"`
	ProcessHint          ProcessHint `json:"process_hint"`
	FocalDepthEstimateMm float64     `json:"focal_depth_estimate_mm"`
}

// Density thresholds in W/mm², checked in descending order.
var processThresholds = []struct {
	above float64
	hint  ProcessHint
}{
	{1000, ProcessCutting},
	{100, ProcessWelding},
	{10, ProcessMarking},
}

var (
	densityPowerW       = Bound{100, 30000}
	densitySpotDiameter = Bound{0.05, 0.5}
	densityMSquared     = Bound{1.0, 10.0}
)

func (in PowerDensityInput) validate() error {
	errs := []error{
		densityPowerW.check("power_w", in.PowerW),
		densitySpotDiameter.check("spot_diameter_mm", in.SpotDiameterMm),
	}
	if in.WavelengthNm != nil {
		errs = append(errs, checkPositive("wavelength_nm", *in.WavelengthNm))
	}
	if in.MSquared != nil {
		errs = append(errs, densityMSquared.check("m_squared", *in.MSquared))
	}
	return firstError(errs...)
}

// ClassifyDensity maps a power density to the process regime it suits.
func ClassifyDensity(wPerMm2 float64) ProcessHint {
	for _, t := range processThresholds {
		if wPerMm2 > t.above {
			return t.hint
		}
	}
	return ProcessUnknown
}

// CalculatePowerDensity computes the spot area and power density of a beam
// focused to SpotDiameterMm.
func CalculatePowerDensity(in PowerDensityInput) (PowerDensityOutput, error) {
	if err := in.validate(); err != nil {
		return PowerDensityOutput{}, err
	}

	r := in.SpotDiameterMm / 2
	area := math.Pi * r * r
	density := in.PowerW / area

	// Coarse depth-of-focus proxy; ignores M².
	focalDepth := clamp(in.SpotDiameterMm*2.5, 0.05, 5)

	return PowerDensityOutput{
		SpotAreaMm2:          round(area, 6),
		PowerDensityWPerMm2:  round(density, 2),
		ProcessHint:          ClassifyDensity(density),
		FocalDepthEstimateMm: round(focalDepth, 3),
	}, nil
}
