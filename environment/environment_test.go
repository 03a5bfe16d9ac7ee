package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vellum/object"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	redef := env.Define("x", object.Number{Value: 1})
	assert.False(t, redef)

	v, ok := env.Get("x")
	assert.True(t, ok)
	assert.Equal(t, object.Number{Value: 1}, v)
}

func TestDefineReportsRedefinitionInSameScope(t *testing.T) {
	env := New()
	env.Define("x", object.Number{Value: 1})
	redef := env.Define("x", object.Number{Value: 2})
	assert.True(t, redef)
}

func TestChildSeesParentBindings(t *testing.T) {
	parent := New()
	parent.Define("x", object.Number{Value: 1})
	child := NewChild(parent)

	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, object.Number{Value: 1}, v)
}

func TestGetMissingNameFails(t *testing.T) {
	env := New()
	_, ok := env.Get("missing")
	assert.False(t, ok)
}

func TestAssignMutatesEnclosingScope(t *testing.T) {
	parent := New()
	parent.Define("x", object.Number{Value: 1})
	child := NewChild(parent)

	ok := child.Assign("x", object.Number{Value: 2})
	assert.True(t, ok)

	v, _ := parent.Get("x")
	assert.Equal(t, object.Number{Value: 2}, v)
}

func TestAssignToUndefinedNameFails(t *testing.T) {
	env := New()
	ok := env.Assign("missing", object.Number{Value: 1})
	assert.False(t, ok)
}

// TestClosureCapturesByReference checks that a closure holds the live
// environment, so a mutation made after the closure is created is
// visible inside the closure too.
func TestClosureCapturesByReference(t *testing.T) {
	outer := New()
	outer.Define("x", object.Number{Value: 1})

	// Simulate what callable.UserFunction does: keep the *Environment
	// pointer, don't snapshot it.
	captured := outer

	outer.Assign("x", object.Number{Value: 2})

	v, ok := captured.Get("x")
	assert.True(t, ok)
	assert.Equal(t, object.Number{Value: 2}, v)
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	env := New()
	env.Define("b", object.Number{Value: 1})
	env.Define("a", object.Number{Value: 2})
	assert.Equal(t, []string{"b", "a"}, env.Names())
}
