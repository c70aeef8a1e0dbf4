package calculator

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"laser-compare/internal/export"
	"laser-compare/internal/laser"
)

func num(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func kerfReport(in laser.KerfInput, out laser.KerfOutput) export.Report {
	return export.Report{
		Inputs: []export.Row{
			{Label: "Laser power", Value: num(in.PowerKw, "kW")},
			{Label: "Material", Value: string(in.Material)},
			{Label: "Thickness", Value: num(in.ThicknessMm, "mm")},
			{Label: "Nozzle diameter", Value: num(in.NozzleDiameterMm, "mm")},
			{Label: "Cutting speed", Value: num(in.SpeedMmPerMin, "mm/min")},
		},
		Results: []export.Row{
			{Label: "Kerf width", Value: num(out.KerfMm, "mm")},
			{Label: "Beam compensation", Value: num(out.CompensationMm, "mm")},
			{Label: "Recommended part spacing", Value: num(out.RecommendedSpacingMm, "mm")},
			{Label: "Utilization impact", Value: num(out.UtilizationImpactPct, "%")},
		},
	}
}

func powerDensityReport(in laser.PowerDensityInput, out laser.PowerDensityOutput) export.Report {
	inputs := []export.Row{
		{Label: "Laser power", Value: num(in.PowerW, "W")},
		{Label: "Spot diameter", Value: num(in.SpotDiameterMm, "mm")},
	}
	if in.WavelengthNm != nil {
		inputs = append(inputs, export.Row{Label: "Wavelength", Value: num(*in.WavelengthNm, "nm")})
	}
	if in.MSquared != nil {
		inputs = append(inputs, export.Row{Label: "Beam quality M²", Value: num(*in.MSquared, "")})
	}
	return export.Report{
		Inputs: inputs,
		Results: []export.Row{
			{Label: "Spot area", Value: num(out.SpotAreaMm2, "mm²")},
			{Label: "Power density", Value: num(out.PowerDensityWPerMm2, "W/mm²")},
			{Label: "Suited process", Value: string(out.ProcessHint)},
			{Label: "Focal depth (estimate)", Value: num(out.FocalDepthEstimateMm, "mm")},
		},
	}
}

func chillerReport(in laser.ChillerInput, out laser.ChillerOutput) export.Report {
	return export.Report{
		Inputs: []export.Row{
			{Label: "Laser type", Value: string(in.LaserType)},
			{Label: "Laser power", Value: num(in.LaserPowerKw, "kW")},
			{Label: "Ambient temperature", Value: num(in.AmbientC, "°C")},
			{Label: "Duty cycle", Value: num(in.DutyCyclePct, "%")},
			{Label: "Safety factor", Value: num(in.SafetyFactor, "")},
		},
		Results: []export.Row{
			{Label: "Cooling capacity", Value: num(out.CoolingCapacityKw, "kW")},
			{Label: "Cooling capacity", Value: num(out.CoolingCapacityKcalPerH, "kcal/h")},
			{Label: "Suggested flow", Value: num(out.SuggestedFlowLpm, "L/min")},
		},
	}
}

func costReport(in laser.CostInput, out laser.CostOutput) export.Report {
	pct := out.BreakdownPct
	return export.Report{
		Inputs: []export.Row{
			{Label: "Cut length", Value: num(in.TotalCutLengthM, "m")},
			{Label: "Sheet area", Value: num(in.SheetAreaM2, "m²")},
			{Label: "Thickness", Value: num(in.ThicknessMm, "mm")},
			{Label: "Material", Value: string(in.Material)},
			{Label: "Laser power", Value: num(in.LaserPowerKw, "kW")},
			{Label: "Assist gas", Value: string(in.AssistGas)},
			{Label: "Average speed", Value: num(in.AverageSpeedMmPerMin, "mm/min")},
		},
		Results: []export.Row{
			{Label: "Processing time", Value: num(out.ProcessingTimeMin, "min")},
			{Label: "Material", Value: fmt.Sprintf("%s (%s%%)", money(out.MaterialCost), num(pct.Material, ""))},
			{Label: "Electricity", Value: fmt.Sprintf("%s (%s%%)", money(out.ElectricityCost), num(pct.Electricity, ""))},
			{Label: "Assist gas", Value: fmt.Sprintf("%s (%s%%)", money(out.GasCost), num(pct.Gas, ""))},
			{Label: "Depreciation", Value: fmt.Sprintf("%s (%s%%)", money(out.DepreciationCost), num(pct.Depreciation, ""))},
			{Label: "Labor", Value: fmt.Sprintf("%s (%s%%)", money(out.LaborCost), num(pct.Labor, ""))},
			{Label: "Total", Value: money(out.TotalCost)},
		},
	}
}

func nozzleLifeReport(in laser.NozzleLifeInput, out laser.NozzleLifeOutput) export.Report {
	b := out.Breakdown
	return export.Report{
		Inputs: []export.Row{
			{Label: "Nozzle", Value: string(in.NozzleMaterial) + " / " + string(in.NozzleType)},
			{Label: "Cutting material", Value: string(in.CuttingMaterial)},
			{Label: "Thickness", Value: num(in.ThicknessMm, "mm")},
			{Label: "Laser power", Value: num(in.PowerKw, "kW")},
			{Label: "Daily operation", Value: num(in.DailyHours, "h")},
			{Label: "Assist gas", Value: string(in.AssistGas)},
		},
		Results: []export.Row{
			{Label: "Expected lifespan", Value: num(out.LifespanHours, "h")},
			{Label: "Replace every", Value: strconv.Itoa(out.LifespanDays) + " days"},
			{Label: "Nozzle price", Value: num(out.NozzlePriceYuan, "CNY")},
			{Label: "Monthly nozzle cost", Value: num(out.MonthlyCostYuan, "CNY")},
			{Label: "Base life", Value: num(b.BaseLife, "h")},
			{Label: "Wear factors (power, thickness, material, gas)", Value: fmt.Sprintf("%s, %s, %s, %s",
				num(b.PowerFactor, ""), num(b.ThicknessFactor, ""), num(b.MaterialFactor, ""), num(b.GasFactor, ""))},
		},
		Notes: out.Tips,
	}
}

// shareURL returns a link that reopens the calculator with in prefilled,
// or "" when no public base URL is configured.
func (h *Handler) shareURL(name string, in any) string {
	if h.shareBaseURL == "" {
		return ""
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}

	q := url.Values{}
	for k, v := range fields {
		switch t := v.(type) {
		case float64:
			q.Set(k, strconv.FormatFloat(t, 'f', -1, 64))
		case string:
			q.Set(k, t)
		}
	}
	return h.shareBaseURL + "/calculators/" + name + "?" + q.Encode()
}
