package laser

// Material is a workpiece material. Not every calculator supports every
// material; each one keeps its own coefficient table and rejects variants
// missing from it.
type Material string

const (
	CarbonSteel    Material = "carbon_steel"
	StainlessSteel Material = "stainless_steel"
	Aluminum       Material = "aluminum"
	Copper         Material = "copper"
	Brass          Material = "brass"
)

// Materials lists every declared material in display order.
var Materials = []Material{CarbonSteel, StainlessSteel, Aluminum, Copper, Brass}

// LaserType is the laser source technology.
type LaserType string

const (
	Fiber      LaserType = "fiber"
	CO2        LaserType = "co2"
	SolidState LaserType = "solid_state"
)

var LaserTypes = []LaserType{Fiber, CO2, SolidState}

// Valid reports whether t is a known laser source.
func (t LaserType) Valid() bool {
	_, ok := chillerHeatLoad[t]
	return ok
}

// AssistGas is the gas jet fed coaxially with the beam.
type AssistGas string

const (
	Oxygen   AssistGas = "oxygen"
	Nitrogen AssistGas = "nitrogen"
	Air      AssistGas = "air"
)

var AssistGases = []AssistGas{Oxygen, Nitrogen, Air}

func (g AssistGas) Valid() bool {
	_, ok := nozzleGasWear[g]
	return ok
}

// NozzleMaterial is what the nozzle tip is machined from.
type NozzleMaterial string

const (
	NozzleCopper       NozzleMaterial = "copper"
	NozzleChromeCopper NozzleMaterial = "chrome_copper"
	NozzleAlloy        NozzleMaterial = "alloy"
)

var NozzleMaterials = []NozzleMaterial{NozzleCopper, NozzleChromeCopper, NozzleAlloy}

// NozzleType is the nozzle construction.
type NozzleType string

const (
	SingleLayer NozzleType = "single_layer"
	DoubleLayer NozzleType = "double_layer"
	HighSpeed   NozzleType = "high_speed"
)

var NozzleTypes = []NozzleType{SingleLayer, DoubleLayer, HighSpeed}

// ProcessHint classifies a power density into the process it suits.
type ProcessHint string

const (
	ProcessCutting ProcessHint = "cutting"
	ProcessWelding ProcessHint = "welding"
	ProcessMarking ProcessHint = "marking"
	ProcessUnknown ProcessHint = "unknown"
)
