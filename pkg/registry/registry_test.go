package registry

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() IRegistry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log)
}

func TestMatchSubstring(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{
		ID:          "go-home",
		Screen:      "tabs",
		Patterns:    []string{"inicio", "home"},
		Description: "Ir a inicio",
	})

	cmd, ok := r.Match("quiero ir a inicio")
	require.True(t, ok)
	assert.Equal(t, "go-home", cmd.ID)
}

func TestMatchNormalizesDiacriticsAndCase(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{
		ID:       "open-catalog",
		Screen:   "tabs",
		Patterns: []string{"catálogo"},
	})

	cmd, ok := r.Match("  Abre el CATALOGO  ")
	require.True(t, ok)
	assert.Equal(t, "open-catalog", cmd.ID)
}

func TestMatchNoPattern(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{ID: "a", Screen: "s", Patterns: []string{"inicio"}})

	_, ok := r.Match("no conozco esa orden")
	assert.False(t, ok)

	_, ok = r.Match("   ")
	assert.False(t, ok)
}

func TestMostRecentRegistrationWins(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{ID: "first", Screen: "home", Patterns: []string{"sube"}})
	r.Register(Command{ID: "second", Screen: "catalog", Patterns: []string{"sube"}})

	cmd, ok := r.Match("sube")
	require.True(t, ok)
	assert.Equal(t, "second", cmd.ID)

	// Removing the newer registration exposes the older one again.
	r.Unregister("second")
	cmd, ok = r.Match("sube")
	require.True(t, ok)
	assert.Equal(t, "first", cmd.ID)
}

func TestReRegisterReplacesAndBecomesMostRecent(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{ID: "nav", Screen: "home", Patterns: []string{"atrás"}, Description: "old"})
	r.Register(Command{ID: "other", Screen: "home", Patterns: []string{"atrás"}})
	r.Register(Command{ID: "nav", Screen: "home", Patterns: []string{"atrás"}, Description: "new"})

	assert.Len(t, r.Commands(), 2)

	cmd, ok := r.Match("atrás")
	require.True(t, ok)
	assert.Equal(t, "nav", cmd.ID)
	assert.Equal(t, "new", cmd.Description)
}

func TestUnregisterScreenReleasesOnlyThatScreen(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{ID: "home-up", Screen: "home", Patterns: []string{"sube"}})
	r.Register(Command{ID: "cat-open", Screen: "catalog", Patterns: []string{"abre"}})
	r.Register(Command{ID: "home-down", Screen: "home", Patterns: []string{"baja"}})

	r.UnregisterScreen("home")

	assert.Len(t, r.Commands(), 1)
	_, ok := r.Match("sube")
	assert.False(t, ok)
	_, ok = r.Match("abre")
	assert.True(t, ok)
}

func TestUnregisterAbsentIsNoop(t *testing.T) {
	r := newTestRegistry()
	r.Unregister("missing")
	assert.Empty(t, r.Commands())
}

func TestDispatchRunsActionOnceAndRecordsDescription(t *testing.T) {
	r := newTestRegistry()

	calls := 0
	r.Register(Command{
		ID:          "go-home",
		Screen:      "tabs",
		Patterns:    []string{"inicio", "home"},
		Action:      func() { calls++ },
		Description: "Ir a inicio",
	})

	cmd, ok := r.Dispatch("quiero ir a inicio")
	require.True(t, ok)
	assert.Equal(t, "go-home", cmd.ID)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Ir a inicio", r.LastExecuted())
}

func TestDispatchSurvivesPanickingAction(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{
		ID:          "boom",
		Screen:      "home",
		Patterns:    []string{"explota"},
		Action:      func() { panic("kaput") },
		Description: "Explotar",
	})

	require.NotPanics(t, func() {
		_, ok := r.Dispatch("explota")
		assert.True(t, ok)
	})

	// The attempted execution is still recorded.
	assert.Equal(t, "Explotar", r.LastExecuted())
}

func TestDispatchNoMatchLeavesLastExecuted(t *testing.T) {
	r := newTestRegistry()

	r.Register(Command{
		ID:          "go-home",
		Screen:      "tabs",
		Patterns:    []string{"inicio"},
		Description: "Ir a inicio",
	})

	_, ok := r.Dispatch("inicio")
	require.True(t, ok)

	_, ok = r.Dispatch("algo sin sentido")
	assert.False(t, ok)
	assert.Equal(t, "Ir a inicio", r.LastExecuted())
}
