package status_test

import (
	"testing"

	"github.com/KirkDiggler/duat-combat/internal/domain/status"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *status.Registry {
	return status.NewRegistry(status.DefaultTuning())
}

func TestApply_RefreshNeverCompounds(t *testing.T) {
	r := newRegistry()

	_, err := r.Apply(status.KindVulnerable, 1, 2)
	require.NoError(t, err)
	entry, err := r.Apply(status.KindVulnerable, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, status.Entry{Kind: status.KindVulnerable, Stacks: 1, Duration: 2}, entry)
	assert.Equal(t, 1.5, r.VulnerableMultiplier())
}

func TestApply_RefreshTakesLargerOfEach(t *testing.T) {
	r := newRegistry()

	_, err := r.Apply(status.KindWeak, 2, 1)
	require.NoError(t, err)
	entry, err := r.Apply(status.KindWeak, 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, entry.Stacks)
	assert.Equal(t, 3, entry.Duration)
	assert.Equal(t, 0.75, r.WeakMultiplier())
}

func TestApply_AdditiveStacks(t *testing.T) {
	r := newRegistry()

	_, err := r.Apply(status.KindStrength, 2, 1)
	require.NoError(t, err)
	entry, err := r.Apply(status.KindStrength, 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, entry.Stacks)
	assert.Equal(t, 3, entry.Duration)
	assert.InDelta(t, 0.75, r.StrengthFactor(), 1e-9)
}

func TestApply_Validation(t *testing.T) {
	r := newRegistry()

	_, err := r.Apply("poisoned", 1, 1)
	assert.True(t, duaterr.IsInvalidArgument(err))

	_, err = r.Apply(status.KindWeak, 0, 1)
	assert.True(t, duaterr.IsInvalidArgument(err))
	assert.Zero(t, r.Len())
}

func TestApply_ZeroDurationIsPermanent(t *testing.T) {
	r := newRegistry()

	entry, err := r.Apply(status.KindDexterity, 1, 0)
	require.NoError(t, err)
	assert.True(t, entry.IsPermanent())
	assert.Equal(t, status.Permanent, entry.Duration)
}

func TestAdvanceTurn_ExpiresAndReports(t *testing.T) {
	r := newRegistry()
	_, _ = r.Apply(status.KindWeak, 1, 1)
	_, _ = r.Apply(status.KindVulnerable, 1, 2)

	expired := r.AdvanceTurn()
	require.Len(t, expired, 1)
	assert.Equal(t, status.KindWeak, expired[0].Kind)
	assert.Equal(t, 1.0, r.WeakMultiplier())

	vuln, ok := r.Get(status.KindVulnerable)
	require.True(t, ok)
	assert.Equal(t, 1, vuln.Duration)

	expired = r.AdvanceTurn()
	require.Len(t, expired, 1)
	assert.Zero(t, r.Len())
}

func TestAdvanceTurn_PermanentNeverExpires(t *testing.T) {
	r := newRegistry()
	_, _ = r.Apply(status.KindStrength, 1, status.Permanent)

	for i := 0; i < 5000; i++ {
		assert.Empty(t, r.AdvanceTurn())
	}

	entry, ok := r.Get(status.KindStrength)
	require.True(t, ok)
	assert.Equal(t, status.Permanent, entry.Duration)
}

func TestQueriesWithoutStatuses(t *testing.T) {
	r := newRegistry()

	assert.Equal(t, 1.0, r.VulnerableMultiplier())
	assert.Equal(t, 1.0, r.WeakMultiplier())
	assert.Zero(t, r.StrengthFactor())
	assert.Zero(t, r.DexterityFactor())
}

func TestClearAndRemove(t *testing.T) {
	r := newRegistry()
	_, _ = r.Apply(status.KindStrength, 1, 3)
	_, _ = r.Apply(status.KindWeak, 1, 3)

	assert.True(t, r.Remove(status.KindWeak))
	assert.False(t, r.Remove(status.KindWeak))
	assert.Equal(t, []status.Entry{{Kind: status.KindStrength, Stacks: 1, Duration: 3}}, r.Entries())

	r.Clear()
	assert.Empty(t, r.Entries())
}
