package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   json.RawMessage
		want    float64
		present bool
		wantErr bool
	}{
		{name: "number", input: json.RawMessage(`22.5`), want: 22.5, present: true},
		{name: "integer", input: json.RawMessage(`80`), want: 80, present: true},
		{name: "numeric string", input: json.RawMessage(`"85.25"`), want: 85.25, present: true},
		{name: "padded numeric string", input: json.RawMessage(`" 3 "`), want: 3, present: true},
		{name: "null", input: json.RawMessage(`null`)},
		{name: "empty string", input: json.RawMessage(`""`)},
		{name: "nil raw message", input: nil},
		{name: "word", input: json.RawMessage(`"warm"`), wantErr: true},
		{name: "object", input: json.RawMessage(`{"v":1}`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FlexibleFloat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexibleInt(t *testing.T) {
	got, ok, err := FlexibleInt(json.RawMessage(`"3"`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	_, _, err = FlexibleInt(json.RawMessage(`2.5`))
	assert.Error(t, err)

	_, ok, err = FlexibleInt(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name  string
		input json.RawMessage
		want  string
	}{
		{name: "string value", input: json.RawMessage(`"hello"`), want: "hello"},
		{name: "integer value", input: json.RawMessage(`42`), want: "42"},
		{name: "float value", input: json.RawMessage(`3.14`), want: "3.14"},
		{name: "null value", input: json.RawMessage(`null`), want: ""},
		{name: "nil raw message", input: nil, want: ""},
		{name: "boolean falls back to raw", input: json.RawMessage(`true`), want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlexibleStringValue(tt.input))
		})
	}
}
