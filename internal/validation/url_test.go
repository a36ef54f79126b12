package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndNormalize(t *testing.T) {
	v := NewBaseURLValidator()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain https", "https://api.akiba.africa", "https://api.akiba.africa", false},
		{"scheme added", "api.akiba.africa", "https://api.akiba.africa", false},
		{"trailing slash stripped", "https://api.akiba.africa/", "https://api.akiba.africa", false},
		{"path kept", "https://akiba.africa/api", "https://akiba.africa/api", false},
		{"empty", "", "", true},
		{"query rejected", "https://akiba.africa?x=1", "", true},
		{"ftp rejected", "ftp://akiba.africa", "", true},
		{"localhost rejected", "http://localhost:8080", "", true},
		{"loopback rejected", "http://127.0.0.1", "", true},
		{"private ip rejected", "http://192.168.1.10", "", true},
		{"angle brackets rejected", "https://akiba.africa/<x>", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPermissiveValidatorAllowsLocal(t *testing.T) {
	v := NewPermissiveBaseURLValidator()

	got, err := v.ValidateAndNormalize("http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = v.ValidateAndNormalize("http://192.168.1.10:3000")
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.10:3000", got)
}
