package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"No", false, false},
		{"false", false, false},
		{"0", false, false},
		{"", false, true},
		{"perhaps", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoolString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", FormatThousands(0))
	assert.Equal(t, "999", FormatThousands(999))
	assert.Equal(t, "1,000", FormatThousands(1000))
	assert.Equal(t, "12,345,678", FormatThousands(12345678))
	assert.Equal(t, "-4,200", FormatThousands(-4200))
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("401 Unauthorized")
	err := fmt.Errorf("connect: %w", NewConnectionError("gitlab", cause))

	assert.True(t, IsConnectionError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gitlab connection error: 401 Unauthorized")

	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "gitlab", ce.Provider)

	assert.False(t, IsConnectionError(cause))
}
