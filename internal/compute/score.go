package compute

// Coefficients of the performance score formula.
const (
	rpmDivisor         = 100.0
	engineLoadWeight   = 0.5
	coolantBaselineC   = 90.0
	coolantExcessScale = 2.0
)

// Input holds the latest value of each recognized diagnostic for one car.
type Input struct {
	// RPM is engine revolutions per minute.
	RPM float64

	// EngineLoad is the engine load percentage.
	EngineLoad float64

	// CoolantTemp is the coolant temperature in degrees Celsius.
	CoolantTemp float64
}

// Score calculates the performance score for in. 100 is an idle engine at
// operating temperature; every 100 RPM, every 2% load and every half degree
// above 90°C costs one point.
func Score(in Input) float64 {
	return 100 - (in.RPM/rpmDivisor +
		in.EngineLoad*engineLoadWeight +
		(in.CoolantTemp-coolantBaselineC)*coolantExcessScale)
}
