// Package compute derives a vehicle's performance score and alert from its
// latest diagnostics.
//
// score.go provides the pure Score(Input) function:
//
//	score = 100 - (rpm/100 + engine_load*0.5 + (coolant_temp-90)*2)
//
// Inputs and outputs are not clamped; a score may be negative or above 100.
//
// alert.go maps completeness and score to an Alert. SensorFailure wins over
// SevereEngineStress, which fires when the score drops below the configured
// threshold (DefaultSevereStressThreshold unless overridden).
package compute
