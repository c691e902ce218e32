package fitness

// Default weights of the built-in dimensions. They only matter with the
// WeightedMean aggregation.
const (
	WeightCurrentAptitudeFulfilled = 1
	WeightInitialAptitudeFulfilled = 1
	WeightBusySlotsAreGood         = 1
	WeightItemEffortsFairness      = 1
	WeightSlotMixFairness          = 1

	// DefaultPowerExponent is the exponent used by PowerMean
	DefaultPowerExponent = 3
)
