package sensor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the display format stamped on each snapshot at receipt.
const TimestampLayout = "15:04:05"

// Fallbacks applied when a payload field is missing or non-numeric.
const (
	FallbackValue   = 0.0
	FallbackBattery = 100.0
)

// Snapshot is one normalized reading from the device.
type Snapshot struct {
	SoilMoisture   float64 `json:"soil_moisture"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	LightIntensity float64 `json:"light_intensity"`
	BatteryLevel   float64 `json:"battery_level"`
	Timestamp      string  `json:"timestamp"`
}

// Initial returns the snapshot shown before the first successful fetch.
func Initial(now time.Time) Snapshot {
	return Snapshot{
		BatteryLevel: FallbackBattery,
		Timestamp:    now.Format(TimestampLayout),
	}
}

// SameReadings reports whether s and o carry identical values on all five
// numeric fields. Comparison is exact; the timestamp is ignored.
func (s Snapshot) SameReadings(o Snapshot) bool {
	return s.SoilMoisture == o.SoilMoisture &&
		s.Temperature == o.Temperature &&
		s.Humidity == o.Humidity &&
		s.LightIntensity == o.LightIntensity &&
		s.BatteryLevel == o.BatteryLevel
}

// Normalize converts a decoded telemetry object into a Snapshot stamped with now.
// Missing, null, boolean, or unparsable fields take their fallback value.
func Normalize(raw map[string]any, now time.Time) Snapshot {
	return Snapshot{
		SoilMoisture:   number(raw, KeySoilMoisture, FallbackValue),
		Temperature:    number(raw, KeyTemperature, FallbackValue),
		Humidity:       number(raw, KeyHumidity, FallbackValue),
		LightIntensity: number(raw, KeyLightIntensity, FallbackValue),
		BatteryLevel:   number(raw, KeyBatteryLevel, FallbackBattery),
		Timestamp:      now.Format(TimestampLayout),
	}
}

// Telemetry payload keys.
const (
	KeySoilMoisture   = "soil_moisture"
	KeyTemperature    = "temperature"
	KeyHumidity       = "humidity"
	KeyLightIntensity = "light_intensity"
	KeyBatteryLevel   = "battery_level"
)

func number(raw map[string]any, key string, fallback float64) float64 {
	v, ok := raw[key]
	if !ok {
		return fallback
	}
	f, ok := ParseNumber(v)
	if !ok {
		return fallback
	}
	return f
}

// ParseNumber extracts a finite float from a decoded JSON value. Numbers and
// numeric strings are accepted; everything else is rejected.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
