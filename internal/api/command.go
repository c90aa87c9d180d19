package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/HamzaOussama/plantX/internal/errors"
)

// Command is a control instruction accepted by the device.
type Command string

const (
	CommandWater   Command = "water"
	CommandLightOn Command = "light_on"
	CommandReset   Command = "reset"
)

// Commands lists every supported command.
var Commands = []Command{CommandWater, CommandLightOn, CommandReset}

// Label returns the operator-facing name of the command.
func (c Command) Label() string {
	switch c {
	case CommandWater:
		return "Water Plant"
	case CommandLightOn:
		return "Grow Light ON"
	case CommandReset:
		return "Reset Sensor"
	default:
		return string(c)
	}
}

// ParseCommand validates a command name.
func ParseCommand(s string) (Command, error) {
	c := Command(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Commands {
		if c == known {
			return c, nil
		}
	}
	names := make([]string, len(Commands))
	for i, known := range Commands {
		names[i] = string(known)
	}
	return "", errors.New(errors.ErrDispatch,
		fmt.Sprintf("Unknown command '%s'", s),
		"Supported commands: "+strings.Join(names, ", "))
}

// CommandRequest is the POST body sent to the command endpoint.
type CommandRequest struct {
	Command   Command `json:"command"`
	DeviceID  string  `json:"device_id"`
	Timestamp string  `json:"timestamp"`
}

// NewCommandRequest stamps a request with the issue time in ISO-8601 (UTC, millisecond precision).
func NewCommandRequest(cmd Command, deviceID string, issuedAt time.Time) CommandRequest {
	return CommandRequest{
		Command:   cmd,
		DeviceID:  deviceID,
		Timestamp: issuedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

type commandResult struct {
	Message *string `json:"message"`
}

// DecodeCommandResponse extracts the message from a double-encoded command response.
// The outer value must be a JSON string or an object with a string "body" field;
// the inner string must be a JSON object with a string "message" field.
func DecodeCommandResponse(body []byte) (string, error) {
	var outer any
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDecode,
			"Command response is not valid JSON",
			"The command endpoint must return a JSON-encoded string")
	}

	var inner string
	switch v := outer.(type) {
	case string:
		inner = v
	case map[string]any:
		b, ok := v["body"].(string)
		if !ok {
			return "", errors.New(errors.ErrDecode,
				"Command response envelope has no string body",
				"Expected {\"body\": \"{\\\"message\\\": ...}\"}")
		}
		inner = b
	default:
		return "", errors.New(errors.ErrDecode,
			fmt.Sprintf("Command response has unexpected shape (%T)", outer),
			"The command endpoint must return a JSON-encoded string")
	}

	var result commandResult
	if err := json.Unmarshal([]byte(inner), &result); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDecode,
			"Command response body is not a JSON object",
			"The inner payload must look like {\"message\": \"...\"}")
	}
	if result.Message == nil {
		return "", errors.New(errors.ErrDecode,
			"Command response has no message",
			"The inner payload must look like {\"message\": \"...\"}")
	}
	return *result.Message, nil
}
