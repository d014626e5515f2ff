package errors_test

import (
	stderrors "errors"
	"testing"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	inner := duaterr.InsufficientResourcef("need %d sand", 3).WithMeta("cost", 3)

	wrapped := duaterr.Wrap(inner, "play card")
	require.NotNil(t, wrapped)

	assert.Equal(t, duaterr.CodeInsufficientResource, wrapped.Code)
	assert.Equal(t, 3, wrapped.Meta["cost"])
	assert.Equal(t, "play card: need 3 sand", wrapped.Error())

	// meta is copied, not shared
	wrapped.WithMeta("cost", 4)
	assert.Equal(t, 3, inner.Meta["cost"])
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, duaterr.Wrap(nil, "nothing"))
	assert.Nil(t, duaterr.WrapWithCode(nil, duaterr.CodeInternal, "nothing"))
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := duaterr.Wrap(stderrors.New("boom"), "redis")
	assert.Equal(t, duaterr.CodeUnknown, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, wrapped.Cause))
}

func TestHasCode_WalksChain(t *testing.T) {
	inner := duaterr.UnknownEffectf("effect kind %q", "TELEPORT")
	outer := duaterr.WrapWithCode(inner, duaterr.CodeInternal, "resolve card")

	assert.False(t, duaterr.Is(outer, duaterr.CodeUnknownEffect))
	assert.True(t, duaterr.HasCode(outer, duaterr.CodeUnknownEffect))
	assert.True(t, duaterr.IsContentIntegrity(outer))
	assert.False(t, duaterr.IsContentIntegrity(duaterr.Validationf("bad")))
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", duaterr.Validationf("x"), true},
		{"insufficient", duaterr.InsufficientResourcef("x"), true},
		{"wrong phase", duaterr.WrongPhasef("x"), true},
		{"not owned", duaterr.NotOwnedf("x"), true},
		{"unknown effect", duaterr.UnknownEffectf("x"), false},
		{"plain", stderrors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, duaterr.IsValidation(tt.err))
		})
	}
}
