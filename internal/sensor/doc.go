// Package sensor defines the normalized reading taken from the plant device
// and its conversion from the raw telemetry payload.
//
// A Snapshot is never partially undefined: every numeric field that is
// missing or non-numeric in the source payload falls back to 0, except the
// battery level which falls back to 100.
package sensor
