package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamzaOussama/plantX/internal/errors"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"key": "value"}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]interface{}{"key": "value"}, env.Data)
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WrapWithCode(stderrors.New("dial tcp: refused"), errors.ErrFetch,
		"Couldn't reach the telemetry endpoint", "Check your network")
	require.NoError(t, WriteJSONFromError(&buf, err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeFetchFailed, env.Error.Code)
	assert.Equal(t, "Couldn't reach the telemetry endpoint", env.Error.Message)
	assert.Equal(t, "Check your network", env.Error.Suggestion)
	assert.Equal(t, "dial tcp: refused", env.Error.Cause)
}

func TestErrorToJSON_Codes(t *testing.T) {
	decode := errors.New(errors.ErrDecode, "Unexpected command response", "")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config not found", errors.New(errors.ErrConfig, "Config file not found: x", ""), ErrCodeConfigNotFound},
		{"config invalid", errors.New(errors.ErrConfig, "device_id is empty", ""), ErrCodeConfigInvalid},
		{"fetch", errors.New(errors.ErrFetch, "Fetch failed", ""), ErrCodeFetchFailed},
		{"dispatch", errors.New(errors.ErrDispatch, "Command failed", ""), ErrCodeCommandFailed},
		{"dispatch bad reply", errors.WrapWithCode(decode, errors.ErrDispatch, "Command failed", ""), ErrCodeBadResponse},
		{"decode", decode, ErrCodeBadResponse},
		{"plain error", stderrors.New("boom"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToJSON(tt.err).Code)
		})
	}
}

func TestErrorToJSON_Nil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}
