package laser

// ChillerInput describes the laser source a chiller has to cool.
type ChillerInput struct {
	LaserType    LaserType `json:"laser_type"`
	LaserPowerKw float64   `json:"laser_power_kw"`
	AmbientC     float64   `json:"ambient_c"`
	DutyCyclePct float64   `json:"duty_cycle_pct"`
	SafetyFactor float64   `json:"safety_factor"`
}

type ChillerOutput struct {
	CoolingCapacityKw       float64 `json:"cooling_capacity_kw"`
	CoolingCapacityKcalPerH float64 `json:"cooling_capacity_kcal_per_h"`
	SuggestedFlowLpm        float64 `json:"suggested_flow_lpm"`
}

// Waste heat per kW of rated optical output.
var chillerHeatLoad = map[LaserType]float64{
	Fiber:      0.35,
	CO2:        1.2,
	SolidState: 0.6,
}

const (
	kcalPerHourPerKw = 860
	// Midpoint of the 3-6 L/min per kW rule of thumb.
	flowLpmPerKw     = 4.5
	referenceAmbient = 25.0
)

var (
	chillerPowerKw      = Bound{1, 30}
	chillerAmbientC     = Bound{10, 45}
	chillerDutyCyclePct = Bound{10, 100}
	chillerSafetyFactor = Bound{1.05, 1.8}
)

func (in ChillerInput) validate() error {
	if !in.LaserType.Valid() {
		return unknownVariant("laser_type", string(in.LaserType))
	}
	return firstError(
		chillerPowerKw.check("laser_power_kw", in.LaserPowerKw),
		chillerAmbientC.check("ambient_c", in.AmbientC),
		chillerDutyCyclePct.check("duty_cycle_pct", in.DutyCyclePct),
		chillerSafetyFactor.check("safety_factor", in.SafetyFactor),
	)
}

// CalculateChiller sizes a chiller for the heat a laser source rejects.
func CalculateChiller(in ChillerInput) (ChillerOutput, error) {
	if err := in.validate(); err != nil {
		return ChillerOutput{}, err
	}

	ambient := 1 + clamp((in.AmbientC-referenceAmbient)*0.015, -0.1, 0.25)
	duty := in.DutyCyclePct / 100
	base := in.LaserPowerKw * chillerHeatLoad[in.LaserType] * duty * ambient

	capacityKw := round(base*in.SafetyFactor, 2)

	return ChillerOutput{
		CoolingCapacityKw:       capacityKw,
		CoolingCapacityKcalPerH: round(capacityKw*kcalPerHourPerKw, 0),
		SuggestedFlowLpm:        round(flowLpmPerKw*base, 2),
	}, nil
}
