// Package alert derives alerts and a coarse health tier from a sensor snapshot.
//
// Alerts and health are computed independently on every call. There is no
// hysteresis: a value oscillating around a threshold flaps on every poll.
package alert

import "github.com/HamzaOussama/plantX/internal/sensor"

// Kind is the severity of a single alert.
type Kind string

const (
	KindWarning  Kind = "warning"
	KindCritical Kind = "critical"
)

// Alert is one fired threshold rule.
type Alert struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Health is the overall classification of a snapshot.
type Health int

const (
	Healthy Health = iota
	Warning
	Critical
)

// String returns the display name of the tier.
func (h Health) String() string {
	switch h {
	case Healthy:
		return "Healthy"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the tier by name for JSON output.
func (h Health) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Thresholds
const (
	LowMoisture       = 30.0
	HighTemperature   = 30.0
	LowBattery        = 20.0
	DryMoisture       = 40.0
	LowHumidity       = 50.0
	OptimalTempMin    = 18.0
	OptimalTempMax    = 28.0
	BatteryHealthyMin = 50.0
)

// Alert messages
const (
	MsgLowMoisture     = "Low soil moisture!"
	MsgHighTemperature = "High temperature!"
	MsgLowBattery      = "Low battery!"
)

// Evaluate returns the alerts fired by s, in rule order, and its health tier.
func Evaluate(s sensor.Snapshot) ([]Alert, Health) {
	return Alerts(s), Classify(s)
}

// Alerts applies each rule independently; several may fire at once.
func Alerts(s sensor.Snapshot) []Alert {
	alerts := []Alert{}
	if s.SoilMoisture < LowMoisture {
		alerts = append(alerts, Alert{Kind: KindWarning, Message: MsgLowMoisture})
	}
	if s.Temperature > HighTemperature {
		alerts = append(alerts, Alert{Kind: KindWarning, Message: MsgHighTemperature})
	}
	if s.BatteryLevel < LowBattery {
		alerts = append(alerts, Alert{Kind: KindCritical, Message: MsgLowBattery})
	}
	return alerts
}

// Classify returns the first matching tier: Critical, then Warning, then Healthy.
// Humidity only influences the Warning tier and never produces an alert.
func Classify(s sensor.Snapshot) Health {
	switch {
	case s.SoilMoisture < LowMoisture || s.Temperature > HighTemperature || s.BatteryLevel < LowBattery:
		return Critical
	case s.SoilMoisture < DryMoisture || s.Humidity < LowHumidity:
		return Warning
	default:
		return Healthy
	}
}

// Messages returns the alert messages in order.
func Messages(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Message
	}
	return out
}
