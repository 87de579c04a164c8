package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExpLogBijective(t *testing.T) {
	var seen [256]bool
	for i := 0; i <= 255; i++ {
		e := expTable[i]
		if seen[e] {
			t.Fatalf("exp value %#02x appears more than once", byte(e))
		}
		seen[e] = true
	}
	seen = [256]bool{}
	for i := 0; i <= 255; i++ {
		l := logTable[i]
		if seen[l] {
			t.Fatalf("log value %#02x appears more than once", byte(l))
		}
		seen[l] = true
	}
}

func TestExpLogInverse(t *testing.T) {
	for i := 1; i <= 255; i++ {
		a := Elem(i)
		assert.Equal(t, a, a.Log().Exp(), "exp(log(%#02x))", i)
	}
}

func TestInvInvolution(t *testing.T) {
	for i := 0; i <= 255; i++ {
		a := Elem(i)
		assert.Equal(t, a, a.Inv().Inv(), "inv(inv(%#02x))", i)
	}
}

func TestFieldLaws(t *testing.T) {
	elem := rapid.Custom(func(t *rapid.T) Elem {
		return Elem(rapid.Byte().Draw(t, "e"))
	})
	t.Run("add commutative", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := elem.Draw(t, "b")
		if a.Add(b) != b.Add(a) {
			t.Fatalf("a+b != b+a for a=%#02x b=%#02x", byte(a), byte(b))
		}
	}))
	t.Run("add associative", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := elem.Draw(t, "b")
		c := elem.Draw(t, "c")
		if a.Add(b.Add(c)) != a.Add(b).Add(c) {
			t.Fatalf("addition not associative for %#02x %#02x %#02x", byte(a), byte(b), byte(c))
		}
	}))
	t.Run("mul commutative", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := elem.Draw(t, "b")
		if a.Mul(b) != b.Mul(a) {
			t.Fatalf("a*b != b*a for a=%#02x b=%#02x", byte(a), byte(b))
		}
	}))
	t.Run("mul associative", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := elem.Draw(t, "b")
		c := elem.Draw(t, "c")
		if a.Mul(b.Mul(c)) != a.Mul(b).Mul(c) {
			t.Fatalf("multiplication not associative for %#02x %#02x %#02x", byte(a), byte(b), byte(c))
		}
	}))
	t.Run("mul distributes over add", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := elem.Draw(t, "b")
		c := elem.Draw(t, "c")
		if a.Mul(b.Add(c)) != a.Mul(b).Add(a.Mul(c)) {
			t.Fatalf("multiplication not distributive for %#02x %#02x %#02x", byte(a), byte(b), byte(c))
		}
	}))
	t.Run("div inverts mul", rapid.MakeCheck(func(t *rapid.T) {
		a := elem.Draw(t, "a")
		b := Elem(rapid.IntRange(1, 255).Draw(t, "b"))
		if got := b.Mul(a.Div(b)); got != a {
			t.Fatalf("b*(a/b) = %#02x, want %#02x", byte(got), byte(a))
		}
	}))
}

func TestDivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Elem(7).Div(0) })
}
