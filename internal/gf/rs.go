package gf

import (
	"errors"
	"fmt"
	"log/slog"
)

// Reed–Solomon over GF(2⁸)/0x11D. The generator polynomial roots start at
// α⁰; encoder and decoder agree on that convention, so round-trips are
// exact even though some third-party codecs start at α¹.

// Encoder produces parity codewords for messages at a fixed parity length.
type Encoder struct {
	nParity int
	gen     Poly
}

// NewEncoder returns an encoder emitting n parity bytes per message.
func NewEncoder(n int) *Encoder {
	return &Encoder{nParity: n, gen: Generator(n)}
}

// Encode returns the parity bytes for msg. The LFSR formulation runs in
// O(len(msg)·n).
func (e *Encoder) Encode(msg []byte) []byte {
	n := e.nParity
	lfsr := make([]Elem, n)
	for _, m := range msg {
		b := Elem(m).Add(lfsr[n-1])
		for j := n - 1; j >= 1; j-- {
			lfsr[j] = lfsr[j-1].Add(e.gen.At(j).Mul(b))
		}
		lfsr[0] = e.gen.At(0).Mul(b)
	}
	parity := make([]byte, 0, n)
	for i := n - 1; i >= 0; i-- {
		parity = append(parity, byte(lfsr[i]))
	}
	return parity
}

// Correction failures. Exceeding the correction capacity or an inconsistent
// Chien search must surface as errors, never as a silent miscorrection.
var (
	ErrTooManyErrors  = errors.New("too many errors")
	ErrWrongRootCount = errors.New("wrong number of roots")
)

// Correct corrects msg in place given its parity bytes and returns a grade:
// 4 when the codeword was error free, otherwise 1..3 by remaining
// correction capacity.
func Correct(msg []byte, parity []byte) (int, error) {
	nParity := len(parity)
	capacity := nParity / 2
	syn, errorsFound := syndromes(msg, parity)
	if !errorsFound {
		return 4, nil
	}
	errorPoly := berlekampMassey(syn, nParity)
	nErrors := errorPoly.Degree()
	if nErrors > capacity {
		return 0, fmt.Errorf("%w: found %d; can only correct up to %d", ErrTooManyErrors, nErrors, capacity)
	}
	remaining := capacity - nErrors
	grade := 1
	if remaining > 2 {
		grade = 3
	} else if remaining > 1 {
		grade = 2
	}

	roots := errorPoly.FindRoots()
	if len(roots) != nErrors {
		return 0, fmt.Errorf("%w: got %d; expected %d", ErrWrongRootCount, len(roots), nErrors)
	}

	evalPoly := errorPoly.Mul(syn)
	evalPoly.Truncate(nParity/2 - 1)
	values := forney(roots, errorPoly, evalPoly)
	total := len(msg) + len(parity)
	for i, r := range roots {
		loc := int(r.LogInv())
		if loc > total-1 {
			slog.Debug("rs: correction out of scope", "loc", loc)
			continue
		}
		pos := total - loc - 1
		if pos < len(msg) {
			msg[pos] ^= byte(values[i])
		}
	}
	return grade, nil
}

// syndromes evaluates the received codeword at α^j for j = 0..len(parity)−1.
// The second return is false when every syndrome is zero.
func syndromes(msg, parity []byte) (Poly, bool) {
	n := len(parity)
	syn := make([]Elem, 0, n)
	any := false
	for j := 0; j < n; j++ {
		x := Elem(j).Exp()
		var sum Elem
		for _, b := range msg {
			sum = Elem(b).Add(x.Mul(sum))
		}
		for _, b := range parity {
			sum = Elem(b).Add(x.Mul(sum))
		}
		if sum != 0 {
			any = true
		}
		syn = append(syn, sum)
	}
	return PolyFrom(syn), any
}

// berlekampMassey computes the minimal connection polynomial for the
// syndrome sequence.
func berlekampMassey(syn Poly, nMax int) Poly {
	connection := NewPolyOne(nMax)
	prev := NewPolyOne(nMax)
	nErrors := 0
	m := 1
	prevD := Elem(1)
	for n := 0; n < nMax; n++ {
		d := discrepancy(connection, syn, nErrors, n)
		switch {
		case d == 0:
			m++
		case 2*nErrors <= n:
			tmp := connection.Clone()
			prev.ShiftLeft(m)
			prev.MulScalar(d.Div(prevD))
			connection.SubAssign(prev)
			prev = tmp
			prevD = d
			nErrors = (n + 1) - nErrors
			m = 1
		default:
			tmp := prev.Clone()
			tmp.ShiftLeft(m)
			tmp.MulScalar(d.Div(prevD))
			connection.SubAssign(tmp)
			m++
		}
	}
	connection.Simplify()
	return connection
}

// discrepancy is the difference between the connection polynomial's
// prediction and the observed syndrome at step n.
func discrepancy(connection, syn Poly, nErrors, n int) Elem {
	d := syn.At(n)
	for i := 1; i <= nErrors; i++ {
		d = d.Add(connection.At(i).Mul(syn.At(n - i)))
	}
	return d
}

// forney evaluates the error magnitude at each root of the error locator.
func forney(roots []Elem, errorPoly, evalPoly Poly) []Elem {
	values := make([]Elem, 0, len(roots))
	der := errorPoly.Derivative()
	for _, r := range roots {
		num := evalPoly.Eval(r)
		den := der.Eval(r)
		values = append(values, r.Inv().Mul(num.Div(den)))
	}
	return values
}
