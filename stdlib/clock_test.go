package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vellum/callable"
	"vellum/environment"
	"vellum/object"
)

func TestRegisterDefinesClock(t *testing.T) {
	env := environment.New()
	Register(env)

	v, ok := env.Get("clock")
	require.True(t, ok)

	fn, ok := v.(*callable.NativeFunction)
	require.True(t, ok)
	assert.Equal(t, "clock", fn.Name())
	assert.Equal(t, 0, fn.Arity())
}

func TestClockReturnsNonDecreasingTimestamps(t *testing.T) {
	env := environment.New()
	Register(env)

	v, _ := env.Get("clock")
	fn := v.(*callable.NativeFunction)

	first, err := fn.Impl(nil)
	require.NoError(t, err)
	second, err := fn.Impl(nil)
	require.NoError(t, err)

	n1, ok := first.(object.Number)
	require.True(t, ok)
	n2, ok := second.(object.Number)
	require.True(t, ok)
	assert.GreaterOrEqual(t, n2.Value, n1.Value)
}
