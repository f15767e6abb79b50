package compute

// DefaultSevereStressThreshold is the score below which a complete car is
// reported as under severe engine stress.
const DefaultSevereStressThreshold = 40.0

// Alert classifies a car's status.
type Alert string

const (
	AlertNone               Alert = ""
	AlertSensorFailure      Alert = "sensor_failure"
	AlertSevereEngineStress Alert = "severe_engine_stress"
)

// Message returns the operator-facing label for a, or "" for AlertNone.
func (a Alert) Message() string {
	switch a {
	case AlertSensorFailure:
		return "Sensor Failure Detected"
	case AlertSevereEngineStress:
		return "Severe Engine Stress"
	default:
		return ""
	}
}

// Classify derives the alert for a car. An incomplete car always reports
// AlertSensorFailure and its score is ignored.
func Classify(complete bool, score, threshold float64) Alert {
	switch {
	case !complete:
		return AlertSensorFailure
	case score < threshold:
		return AlertSevereEngineStress
	default:
		return AlertNone
	}
}
