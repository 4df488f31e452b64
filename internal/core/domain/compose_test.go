package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/npmwrap/internal/core/domain"
)

func pathOf(t *testing.T, env *domain.Environment) string {
	t.Helper()
	p, ok := env.Get(domain.PathVar)
	require.True(t, ok, "PATH must be set")
	return p
}

func TestSelectSeparator(t *testing.T) {
	tests := []struct {
		name       string
		def        string
		advertised string
		ok         bool
		want       string
	}{
		{name: "advertised wins", def: ":", advertised: ";", ok: true, want: ";"},
		{name: "absent falls back", def: ":", advertised: "", ok: false, want: ":"},
		{name: "empty advertised falls back", def: ";", advertised: "", ok: true, want: ";"},
		{name: "same as default", def: ":", advertised: ":", ok: true, want: ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SelectSeparator(tt.def, tt.advertised, tt.ok))
		})
	}
}

func TestComposeEnvironment_PrefixAndSuffix(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{"PATH=/usr/bin:/bin", "HOME=/home/ci"})

	got := domain.ComposeEnvironment(baseline, nil, "/opt/node/bin", ":")

	p := pathOf(t, got)
	assert.True(t, strings.HasPrefix(p, "/opt/node/bin:"))
	assert.Equal(t, "/usr/bin:/bin", strings.TrimPrefix(p, "/opt/node/bin:"))
	home, _ := got.Get("HOME")
	assert.Equal(t, "/home/ci", home)
}

func TestComposeEnvironment_EndToEndExample(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{"PATH=/usr/bin"})

	got := domain.ComposeEnvironment(baseline, []string{"FOO=bar"}, "/opt/node/bin", ":")

	assert.Equal(t, "/opt/node/bin:/usr/bin", pathOf(t, got))
	foo, ok := got.Get("FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", foo)
}

func TestComposeEnvironment_OverridesApplyBeforePrepend(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{"PATH=/usr/bin"})

	got := domain.ComposeEnvironment(baseline, []string{"PATH=/custom", "PATH=/later"}, "/opt/node/bin", ":")

	assert.Equal(t, "/opt/node/bin:/later", pathOf(t, got))
}

func TestComposeEnvironment_LaterOverrideWins(t *testing.T) {
	got := domain.ComposeEnvironment(domain.NewEnvironment(), []string{"X=1", "X=2"}, "/b", ":")

	x, ok := got.Get("X")
	require.True(t, ok)
	assert.Equal(t, "2", x)
}

func TestComposeEnvironment_AbsentPath(t *testing.T) {
	got := domain.ComposeEnvironment(domain.EnvironmentFromLines([]string{"HOME=/root"}), nil, "/opt/node/bin", ":")
	assert.Equal(t, "/opt/node/bin", pathOf(t, got))
}

func TestComposeEnvironment_EmptyPath(t *testing.T) {
	got := domain.ComposeEnvironment(domain.EnvironmentFromLines([]string{"PATH="}), nil, "/opt/node/bin", ":")
	assert.Equal(t, "/opt/node/bin", pathOf(t, got))
}

func TestComposeEnvironment_WindowsSeparator(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{`PATH=C:\Windows`})

	got := domain.ComposeEnvironment(baseline, nil, `C:\tools\node`, ";")

	assert.Equal(t, `C:\tools\node;C:\Windows`, pathOf(t, got))
}

func TestComposeEnvironment_DoesNotMutateBaseline(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{"PATH=/usr/bin"})

	_ = domain.ComposeEnvironment(baseline, []string{"FOO=bar"}, "/opt/node/bin", ":")

	assert.Equal(t, []string{"PATH=/usr/bin"}, baseline.Lines())
}

func TestComposeEnvironment_IgnoresMalformedOverrides(t *testing.T) {
	got := domain.ComposeEnvironment(domain.NewEnvironment(), []string{"NOEQUALS", "=x", "OK=1"}, "/b", ":")

	assert.Equal(t, []string{"OK=1", "PATH=/b"}, got.Lines())
}

func TestComposeEnvironment_TwiceDuplicatesPrefix(t *testing.T) {
	baseline := domain.EnvironmentFromLines([]string{"PATH=/usr/bin"})

	once := domain.ComposeEnvironment(baseline, nil, "/opt/node/bin", ":")
	twice := domain.ComposeEnvironment(once, nil, "/opt/node/bin", ":")

	assert.Equal(t, "/opt/node/bin:/opt/node/bin:/usr/bin", pathOf(t, twice))
}
