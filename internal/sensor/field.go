package sensor

// Field identifies one of the five numeric readings of a Snapshot.
type Field int

const (
	FieldSoilMoisture Field = iota
	FieldTemperature
	FieldHumidity
	FieldLightIntensity
	FieldBatteryLevel
)

// Fields lists the numeric readings in display order.
var Fields = []Field{
	FieldSoilMoisture,
	FieldTemperature,
	FieldHumidity,
	FieldLightIntensity,
	FieldBatteryLevel,
}

// Key returns the telemetry payload key for the field.
func (f Field) Key() string {
	switch f {
	case FieldSoilMoisture:
		return KeySoilMoisture
	case FieldTemperature:
		return KeyTemperature
	case FieldHumidity:
		return KeyHumidity
	case FieldLightIntensity:
		return KeyLightIntensity
	case FieldBatteryLevel:
		return KeyBatteryLevel
	default:
		return "unknown"
	}
}

// Label returns a human-readable name for the field.
func (f Field) Label() string {
	switch f {
	case FieldSoilMoisture:
		return "Soil Moisture"
	case FieldTemperature:
		return "Temperature"
	case FieldHumidity:
		return "Humidity"
	case FieldLightIntensity:
		return "Light"
	case FieldBatteryLevel:
		return "Battery"
	default:
		return "Unknown"
	}
}

// Unit returns the display suffix for the field's value.
func (f Field) Unit() string {
	if f == FieldTemperature {
		return "°C"
	}
	return "%"
}

// Value reads the field from a snapshot.
func (f Field) Value(s Snapshot) float64 {
	switch f {
	case FieldSoilMoisture:
		return s.SoilMoisture
	case FieldTemperature:
		return s.Temperature
	case FieldHumidity:
		return s.Humidity
	case FieldLightIntensity:
		return s.LightIntensity
	case FieldBatteryLevel:
		return s.BatteryLevel
	default:
		return 0
	}
}
