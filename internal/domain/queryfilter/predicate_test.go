package queryfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd_Simplifies(t *testing.T) {
	a := Eq("a", "1")
	b := Eq("b", "2")
	c := Contains("c", "x")

	assert.True(t, And().IsTrue())
	assert.True(t, And(True(), True()).IsTrue())
	assert.Equal(t, a, And(True(), a))
	assert.True(t, And(a, False(), b).IsFalse())
	assert.Equal(t, []Predicate{a, b, c}, And(And(a, b), c).Terms)
}

func TestOr_Simplifies(t *testing.T) {
	a := Eq("a", "1")
	b := Eq("b", "2")

	assert.True(t, Or().IsFalse())
	assert.Equal(t, a, Or(False(), a))
	assert.True(t, Or(a, True()).IsTrue())
	assert.Equal(t, []Predicate{a, b, a}, Or(Or(a, b), a).Terms)
}

func TestPredicate_String(t *testing.T) {
	p := And(Eq("staffId", "s1"), Or(Contains("title", `say "hi"`), Eq("x", "y")))
	assert.Equal(t, `staffId = "s1" AND (title contains "say \"hi\"" OR x = "y")`, p.String())
	assert.Equal(t, "TRUE", True().String())
	assert.Equal(t, "FALSE", False().String())
}

func TestPredicate_Implies(t *testing.T) {
	role := Eq("familyId", "f1")
	p := And(Contains("fullName", "ann"), role)

	assert.True(t, p.Implies(role))
	assert.True(t, p.Implies(True()))
	assert.False(t, p.Implies(Eq("familyId", "f2")))
	assert.True(t, False().Implies(role))
	assert.False(t, True().Implies(role))
}
