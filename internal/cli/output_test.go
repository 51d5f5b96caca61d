package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"exit error", NewExitError(ExitFailure, "boom"), ExitFailure},
		{"wrapped exit error", fmt.Errorf("context: %w", NewExitError(ExitFailure, "boom")), ExitFailure},
		{"plain error", errors.New("boom"), ExitFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetExitCode(tc.err))
		})
	}
}

func TestExitError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapExitError(ExitFailure, "build failed", cause)

	assert.Equal(t, "build failed: underlying", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewExitError(ExitFailure, "coverage incomplete")
	assert.Equal(t, "coverage incomplete", bare.Error())
}

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Success(map[string]int{"passed": 31}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Error("toolchain not found"))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "toolchain not found", resp.Error)
}

func TestOutputFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	require.NoError(t, f.Error("toolchain not found"))
	assert.Equal(t, "Error: toolchain not found\n", buf.String())
}
