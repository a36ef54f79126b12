package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Kind
	}{
		{"meeting link", "https://meet.akiba.africa/w/123", KindLink},
		{"plain page", "https://akiba.africa/learn/savings", KindLink},
		{"certificate pdf", "https://cdn.akiba.africa/certs/abc.pdf", KindPDF},
		{"pdf with query", "https://cdn.akiba.africa/certs/abc.pdf?token=xyz", KindPDF},
		{"pdf with fragment", "https://cdn.akiba.africa/certs/abc.PDF#page=2", KindPDF},
		{"pdf-ish path segment", "https://akiba.africa/pdf/viewer", KindLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.target))
		})
	}
}

func TestRegistryLoadsEmbeddedDefinitions(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	platform := registry.Platform()
	assert.NotEmpty(t, platform.DefaultOpener)
}

func TestRegistryCommandUnknownOpener(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	cmd, err := registry.Command("some-custom-tool", "https://akiba.africa")
	require.NoError(t, err)
	require.Len(t, cmd.Args, 2)
	assert.Equal(t, "https://akiba.africa", cmd.Args[1])
}

func TestRegistryFindAvailable(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	assert.Empty(t, registry.FindAvailable([]string{"definitely-not-installed-xyz"}))
	// The shell exists everywhere this test runs.
	assert.Equal(t, "sh", registry.FindAvailable([]string{"definitely-not-installed-xyz", "sh"}))
}

func TestOpenRejectsEmptyTarget(t *testing.T) {
	l, err := NewLauncher()
	require.NoError(t, err)

	assert.Error(t, l.Open(""))
	assert.Error(t, l.Open("   "))
}
