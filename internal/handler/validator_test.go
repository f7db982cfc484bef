package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationError(t *testing.T) {
	slot := -1
	err := GetValidator().ValidateStruct(WhackRequest{SlotID: &slot})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"slot_id": "Must be at least 0"}, FormatValidationError(err))

	err = GetValidator().ValidateStruct(CreateSessionRequest{PlayerName: "a\tb"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"player_name": "Must not contain control characters"}, FormatValidationError(err))

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "slot_id", toSnakeCase("SlotID"))
	assert.Equal(t, "player_name", toSnakeCase("PlayerName"))
	assert.Equal(t, "x", toSnakeCase("X"))
}

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"alice", true},
		{"律师克星", true},
		{"", false},
		{"  ", false},
		{"bad\x00name", false},
	}
	for _, tt := range tests {
		err := GetValidator().ValidateStruct(CreateSessionRequest{PlayerName: tt.name})
		assert.Equal(t, tt.valid, err == nil, "%q", tt.name)
	}
}
