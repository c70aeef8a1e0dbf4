package calculator

import "laser-compare/internal/laser"

// The five calculators served under /api/calculators.
var (
	kerf = calculation[laser.KerfInput, laser.KerfOutput]{
		name:    "kerf",
		title:   "Kerf width estimate",
		compute: laser.CalculateKerf,
		report:  kerfReport,
	}
	powerDensity = calculation[laser.PowerDensityInput, laser.PowerDensityOutput]{
		name:    "power-density",
		title:   "Power density",
		compute: laser.CalculatePowerDensity,
		report:  powerDensityReport,
	}
	chiller = calculation[laser.ChillerInput, laser.ChillerOutput]{
		name:    "chiller",
		title:   "Chiller sizing",
		compute: laser.CalculateChiller,
		report:  chillerReport,
	}
	cost = calculation[laser.CostInput, laser.CostOutput]{
		name:    "cost",
		title:   "Cutting cost estimate",
		compute: laser.EstimateCost,
		report:  costReport,
	}
	nozzleLife = calculation[laser.NozzleLifeInput, laser.NozzleLifeOutput]{
		name:    "nozzle-life",
		title:   "Nozzle life prediction",
		compute: laser.CalculateNozzleLife,
		report:  nozzleLifeReport,
	}
)
