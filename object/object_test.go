package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, Null{}.Truthy())
	assert.False(t, Number{Value: 0}.Truthy())
	assert.True(t, Number{Value: 1}.Truthy())
	assert.True(t, Bool{Value: true}.Truthy())
	assert.False(t, Bool{Value: false}.Truthy())
	assert.False(t, String{Value: ""}.Truthy())
	assert.True(t, String{Value: "x"}.Truthy())
	assert.False(t, Array{}.Truthy())
	assert.True(t, Array{Elements: []Value{Number{Value: 1}}}.Truthy())
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "3.000000", Number{Value: 3}.String())
	assert.Equal(t, "3.140000", Number{Value: 3.14}.String())
}

func TestBoolStringCapitalized(t *testing.T) {
	assert.Equal(t, "True", Bool{Value: true}.String())
	assert.Equal(t, "False", Bool{Value: false}.String())
}

func TestArrayString(t *testing.T) {
	a := Array{Elements: []Value{Number{Value: 1}, String{Value: "x"}}}
	assert.Equal(t, "[1.000000, x]", a.String())
}

func TestEqualityIsVariantRespecting(t *testing.T) {
	assert.False(t, Number{Value: 0}.Equal(Bool{Value: false}))
	assert.False(t, Null{}.Equal(Bool{Value: false}))
	assert.True(t, Number{Value: 1}.Equal(Number{Value: 1}))
}

func TestArrayEqualityIsElementwise(t *testing.T) {
	a := Array{Elements: []Value{Number{Value: 1}, Number{Value: 2}}}
	b := Array{Elements: []Value{Number{Value: 1}, Number{Value: 2}}}
	c := Array{Elements: []Value{Number{Value: 1}, Number{Value: 3}}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIsInteger(t *testing.T) {
	assert.True(t, Number{Value: 4}.IsInteger())
	assert.False(t, Number{Value: 4.5}.IsInteger())
}
