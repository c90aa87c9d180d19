package alert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamzaOussama/plantX/internal/sensor"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   sensor.Snapshot
		wantAlerts []string
		wantHealth Health
	}{
		{
			name:       "low moisture is critical",
			snapshot:   sensor.Snapshot{SoilMoisture: 25, Temperature: 20, Humidity: 60, BatteryLevel: 50},
			wantAlerts: []string{MsgLowMoisture},
			wantHealth: Critical,
		},
		{
			name:       "low humidity warns without an alert",
			snapshot:   sensor.Snapshot{SoilMoisture: 35, Temperature: 20, Humidity: 40, BatteryLevel: 50},
			wantAlerts: []string{},
			wantHealth: Warning,
		},
		{
			name:       "healthy",
			snapshot:   sensor.Snapshot{SoilMoisture: 60, Temperature: 22, Humidity: 70, BatteryLevel: 80},
			wantAlerts: []string{},
			wantHealth: Healthy,
		},
		{
			name:       "dry but humid warns",
			snapshot:   sensor.Snapshot{SoilMoisture: 39.9, Temperature: 22, Humidity: 70, BatteryLevel: 80},
			wantAlerts: []string{},
			wantHealth: Warning,
		},
		{
			name:       "all rules fire in order",
			snapshot:   sensor.Snapshot{SoilMoisture: 10, Temperature: 35, Humidity: 20, BatteryLevel: 5},
			wantAlerts: []string{MsgLowMoisture, MsgHighTemperature, MsgLowBattery},
			wantHealth: Critical,
		},
		{
			name:       "high temperature only",
			snapshot:   sensor.Snapshot{SoilMoisture: 60, Temperature: 30.1, Humidity: 70, BatteryLevel: 80},
			wantAlerts: []string{MsgHighTemperature},
			wantHealth: Critical,
		},
		{
			name:       "thresholds are strict",
			snapshot:   sensor.Snapshot{SoilMoisture: 40, Temperature: 30, Humidity: 50, BatteryLevel: 20},
			wantAlerts: []string{},
			wantHealth: Healthy,
		},
		{
			name:       "battery fallback snapshot",
			snapshot:   sensor.Snapshot{BatteryLevel: 15},
			wantAlerts: []string{MsgLowMoisture, MsgLowBattery},
			wantHealth: Critical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts, health := Evaluate(tt.snapshot)
			assert.Equal(t, tt.wantAlerts, Messages(alerts))
			assert.Equal(t, tt.wantHealth, health)
		})
	}
}

func TestAlerts_Kinds(t *testing.T) {
	alerts := Alerts(sensor.Snapshot{SoilMoisture: 10, Temperature: 35, BatteryLevel: 5})
	require.Len(t, alerts, 3)
	assert.Equal(t, KindWarning, alerts[0].Kind)
	assert.Equal(t, KindWarning, alerts[1].Kind)
	assert.Equal(t, KindCritical, alerts[2].Kind)
}

func TestHealth_String(t *testing.T) {
	assert.Equal(t, "Healthy", Healthy.String())
	assert.Equal(t, "Warning", Warning.String())
	assert.Equal(t, "Critical", Critical.String())
	assert.Equal(t, "Unknown", Health(9).String())
}

func TestHealth_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Health Health `json:"health"`
	}{Critical})
	require.NoError(t, err)
	assert.JSONEq(t, `{"health":"Critical"}`, string(out))
}
