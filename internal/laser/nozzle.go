package laser

import "math"

// NozzleLifeInput describes a nozzle and the duty it sees.
type NozzleLifeInput struct {
	NozzleMaterial  NozzleMaterial `json:"nozzle_material"`
	NozzleType      NozzleType     `json:"nozzle_type"`
	CuttingMaterial Material       `json:"cutting_material"`
	ThicknessMm     float64        `json:"thickness_mm"`
	PowerKw         float64        `json:"power_kw"`
	DailyHours      float64        `json:"daily_hours"`
	AssistGas       AssistGas      `json:"assist_gas"`
}

type NozzleLifeOutput struct {
	LifespanHours   float64         `json:"lifespan_hours"`
	LifespanDays    int             `json:"lifespan_days"`
	MonthlyCostYuan float64         `json:"monthly_cost_yuan"`
	NozzlePriceYuan float64         `json:"nozzle_price_yuan"`
	Tips            []string        `json:"tips"`
	Breakdown       NozzleBreakdown `json:"breakdown"`
}

// NozzleBreakdown exposes the base life and each wear factor applied to it.
type NozzleBreakdown struct {
	BaseLife        float64 `json:"base_life"`
	PowerFactor     float64 `json:"power_factor"`
	ThicknessFactor float64 `json:"thickness_factor"`
	MaterialFactor  float64 `json:"material_factor"`
	GasFactor       float64 `json:"gas_factor"`
}

// Base life in hours of a single-layer nozzle.
var nozzleBaseLife = map[NozzleMaterial]float64{
	NozzleCopper:       120,
	NozzleChromeCopper: 180,
	NozzleAlloy:        240,
}

var nozzleTypeFactor = map[NozzleType]float64{
	SingleLayer: 1.0,
	DoubleLayer: 1.3,
	HighSpeed:   0.8,
}

var nozzleMaterialWear = map[Material]float64{
	CarbonSteel:    1.0,
	StainlessSteel: 1.2,
	Aluminum:       0.9,
	Copper:         1.4,
}

var nozzleGasWear = map[AssistGas]float64{
	Oxygen:   1.3,
	Nitrogen: 0.9,
	Air:      1.0,
}

// Unit price in yuan by nozzle material and construction.
var nozzleUnitPrice = map[NozzleMaterial]map[NozzleType]float64{
	NozzleCopper:       {SingleLayer: 15, DoubleLayer: 20, HighSpeed: 25},
	NozzleChromeCopper: {SingleLayer: 25, DoubleLayer: 32, HighSpeed: 38},
	NozzleAlloy:        {SingleLayer: 40, DoubleLayer: 50, HighSpeed: 60},
}

// Thickness wear steps: the first bound the plate does not exceed wins.
var nozzleThicknessWear = []struct {
	upToMm float64
	factor float64
}{
	{3, 0.8},
	{10, 1.0},
	{20, 1.3},
	{math.Inf(1), 1.6},
}

const (
	referencePowerKw = 6.0
	daysPerMonth     = 30
)

var (
	nozzleThicknessMm = Bound{0.5, 50}
	nozzlePowerKw     = Bound{1, 30}
	nozzleDailyHours  = Bound{1, 24}
)

func (in NozzleLifeInput) validate() error {
	if _, ok := nozzleBaseLife[in.NozzleMaterial]; !ok {
		return unknownVariant("nozzle_material", string(in.NozzleMaterial))
	}
	if _, ok := nozzleTypeFactor[in.NozzleType]; !ok {
		return unknownVariant("nozzle_type", string(in.NozzleType))
	}
	if _, ok := nozzleMaterialWear[in.CuttingMaterial]; !ok {
		return unknownVariant("cutting_material", string(in.CuttingMaterial))
	}
	if !in.AssistGas.Valid() {
		return unknownVariant("assist_gas", string(in.AssistGas))
	}
	return firstError(
		nozzleThicknessMm.check("thickness_mm", in.ThicknessMm),
		nozzlePowerKw.check("power_kw", in.PowerKw),
		nozzleDailyHours.check("daily_hours", in.DailyHours),
	)
}

func thicknessWear(mm float64) float64 {
	for _, step := range nozzleThicknessWear {
		if mm <= step.upToMm {
			return step.factor
		}
	}
	return nozzleThicknessWear[len(nozzleThicknessWear)-1].factor
}

// CalculateNozzleLife predicts how long a nozzle lasts under the given load,
// how often it needs replacing and what that costs per month.
func CalculateNozzleLife(in NozzleLifeInput) (NozzleLifeOutput, error) {
	if err := in.validate(); err != nil {
		return NozzleLifeOutput{}, err
	}

	baseLife := nozzleBaseLife[in.NozzleMaterial] * nozzleTypeFactor[in.NozzleType]

	powerFactor := clamp(math.Pow(in.PowerKw/referencePowerKw, 0.7), 0.5, 2.5)
	thicknessFactor := thicknessWear(in.ThicknessMm)
	materialFactor := nozzleMaterialWear[in.CuttingMaterial]
	gasFactor := nozzleGasWear[in.AssistGas]
	totalWear := powerFactor * thicknessFactor * materialFactor * gasFactor

	lifespan := round(baseLife/totalWear, 1)

	days := int(math.Floor(lifespan / in.DailyHours))
	if days < 1 {
		days = 1
	}

	price := nozzleUnitPrice[in.NozzleMaterial][in.NozzleType]
	nozzlesPerMonth := (in.DailyHours * daysPerMonth) / lifespan

	return NozzleLifeOutput{
		LifespanHours:   lifespan,
		LifespanDays:    days,
		MonthlyCostYuan: round(nozzlesPerMonth*price, 0),
		NozzlePriceYuan: price,
		Tips:            nozzleTips(in, totalWear),
		Breakdown: NozzleBreakdown{
			BaseLife:        round(baseLife, 1),
			PowerFactor:     round(powerFactor, 3),
			ThicknessFactor: thicknessFactor,
			MaterialFactor:  materialFactor,
			GasFactor:       gasFactor,
		},
	}, nil
}

var genericNozzleTips = []string{
	"Clean the nozzle tip and check the bore for spatter at every shift change.",
	"Re-centre the nozzle after every replacement or collision.",
	"Keep the protective window clean; a dirty lens heats the nozzle.",
}

// nozzleTips returns advisory notes in a fixed order. Generic best-practice
// tips are appended when no rule fires or the overall wear is mild.
func nozzleTips(in NozzleLifeInput, totalWear float64) []string {
	var tips []string

	if totalWear > 1.5 {
		tips = append(tips, "Wear is well above baseline: consider a double-layer nozzle or gentler cutting parameters.")
	}
	if in.PowerKw > 10 {
		tips = append(tips, "High laser power: check nozzle concentricity and standoff more often.")
	}
	if in.AssistGas == Oxygen {
		tips = append(tips, "Oxygen cutting oxidises the nozzle tip; inspect it for slag build-up daily.")
		if in.CuttingMaterial == StainlessSteel {
			tips = append(tips, "For stainless steel, nitrogen gives an oxide-free edge and extends nozzle life.")
		}
	}
	if in.NozzleMaterial == NozzleCopper && totalWear > 1.3 {
		tips = append(tips, "Under this load a chrome-copper nozzle lasts noticeably longer than plain copper.")
	}
	if in.ThicknessMm > 15 {
		tips = append(tips, "Thick plate throws more spatter: apply anti-spatter compound and keep spare nozzles at hand.")
	}
	if in.CuttingMaterial == Copper {
		tips = append(tips, "Copper is highly reflective: use back-reflection protection and watch for nozzle overheating.")
	}

	if len(tips) == 0 || totalWear <= 1.2 {
		tips = append(tips, genericNozzleTips...)
	}
	return tips
}
