// Package api is the HTTP client for the plant device's cloud endpoints.
//
// Two endpoints are used:
//
//	GET  telemetry_url   -> JSON object with optional numeric fields
//	POST command_url     -> {"command", "device_id", "timestamp"}
//
// The command endpoint answers with a double-encoded payload: the outer JSON
// value is a string (or an object whose "body" field is a string) which itself
// holds the JSON object {"message": "..."}. DecodeCommandResponse performs
// both decodes.
package api
