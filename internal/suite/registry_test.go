package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	s := New("checkout", NewTest("adds item", nil))
	require.NoError(t, reg.Register(s))

	resolved, err := reg.Resolve("checkout", RunnableFingerprint())
	require.NoError(t, err)
	assert.Same(t, s, resolved)
}

func TestRegistry_ResolveUnknownName(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("missing", RunnableFingerprint())
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing", resErr.Name)
	assert.Contains(t, err.Error(), "missing")
}

func TestRegistry_ResolveUnsupportedFingerprint(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(New("checkout")))

	_, err := reg.Resolve("checkout", Fingerprint{IsModule: false, Marker: "other.Suite"})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Message, "fingerprint")
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(New("dup")))
	require.Error(t, reg.Register(New("dup")))
}

func TestRegistry_NormalizesUnicodeNames(t *testing.T) {
	reg := NewRegistry()

	// "é" as a precomposed code point vs combining sequence.
	require.NoError(t, reg.Register(New("café")))

	resolved, err := reg.Resolve("café", RunnableFingerprint())
	require.NoError(t, err)
	assert.Equal(t, "café", resolved.Name())
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(New("zeta")))
	require.NoError(t, reg.Register(New("alpha")))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.Names())
}
