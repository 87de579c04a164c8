package gf

// Poly is a polynomial over GF(2⁸). Coefficients are stored lowest degree
// first. Polynomials used by the Berlekamp–Massey loop keep a fixed length;
// Simplify trims trailing zero coefficients down to at least one.
type Poly struct {
	c []Elem
}

// NewPoly returns the zero polynomial with room for n coefficients.
func NewPoly(n int) Poly {
	return Poly{c: make([]Elem, n)}
}

// NewPolyOne returns the constant polynomial 1 with room for n coefficients.
func NewPolyOne(n int) Poly {
	p := Poly{c: make([]Elem, n)}
	p.c[0] = 1
	return p
}

// PolyFrom wraps the given coefficients (lowest degree first).
func PolyFrom(c []Elem) Poly { return Poly{c: c} }

// Len returns the number of stored coefficients.
func (p Poly) Len() int { return len(p.c) }

// At returns the coefficient of x^i, or zero beyond the stored length.
func (p Poly) At(i int) Elem {
	if i >= len(p.c) {
		return 0
	}
	return p.c[i]
}

// Set assigns the coefficient of x^i.
func (p Poly) Set(i int, v Elem) { p.c[i] = v }

// Degree returns the highest index with a non-zero coefficient. The zero
// and constant polynomials have degree 0.
func (p Poly) Degree() int {
	for i := len(p.c) - 1; i > 0; i-- {
		if p.c[i] != 0 {
			return i
		}
	}
	return 0
}

// Simplify drops trailing zero coefficients, keeping at least one, and
// returns the resulting degree.
func (p *Poly) Simplify() int {
	for i := len(p.c) - 1; i > 0; i-- {
		if p.c[i] == 0 {
			p.c = p.c[:i]
		} else {
			return i
		}
	}
	return 0
}

// Truncate clamps the polynomial to the given degree and simplifies.
func (p *Poly) Truncate(degree int) {
	if len(p.c) > degree+1 {
		p.c = p.c[:degree+1]
	}
	p.Simplify()
}

// Clone returns an independent copy.
func (p Poly) Clone() Poly {
	c := make([]Elem, len(p.c))
	copy(c, p.c)
	return Poly{c: c}
}

// Eval evaluates the polynomial at x using Horner's scheme from the highest
// non-zero coefficient.
func (p Poly) Eval(x Elem) Elem {
	n := p.Degree()
	v := p.c[n]
	for j := n - 1; j >= 0; j-- {
		v = p.c[j].Add(v.Mul(x))
	}
	return v
}

// FindRoots evaluates the polynomial at all 256 field elements and returns
// up to Degree() roots.
func (p Poly) FindRoots() []Elem {
	n := p.Degree()
	roots := make([]Elem, 0, n)
	for r := 0; r <= 255; r++ {
		if p.Eval(Elem(r)) == 0 {
			roots = append(roots, Elem(r))
			if len(roots) >= n {
				return roots
			}
		}
	}
	return roots
}

// Derivative returns the formal derivative. Over GF(2⁸) the coefficient of
// x^j is (j+1)·c[j+1] where multiplication is repeated XOR addition, which
// collapses even multiplicities to zero.
func (p Poly) Derivative() Poly {
	n := len(p.c) - 1
	der := NewPoly(n)
	for i := 0; i < n; i++ {
		var v Elem
		for k := 1; k <= i+1; k++ {
			v = v.Add(p.c[i+1])
		}
		der.c[i] = v
	}
	return der
}

// Mul returns the product of p and q, trimmed of trailing zeros.
func (p Poly) Mul(q Poly) Poly {
	m := len(p.c)
	n := len(q.c)
	dst := NewPoly(n + m + 1)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			dst.c[i+j] = dst.c[i+j].Add(p.c[i].Mul(q.c[j]))
		}
	}
	dst.Simplify()
	return dst
}

// SubAssign subtracts q from p in place over p's stored coefficients.
func (p Poly) SubAssign(q Poly) {
	for i := 0; i < len(p.c); i++ {
		p.c[i] = p.c[i].Add(q.At(i))
	}
}

// MulScalar multiplies every coefficient by f in place.
func (p Poly) MulScalar(f Elem) {
	for i := 0; i < len(p.c); i++ {
		p.c[i] = p.c[i].Mul(f)
	}
}

// ShiftLeft multiplies by x^shift in place, within the stored length.
// Coefficients shifted beyond the stored length are lost.
func (p Poly) ShiftLeft(shift int) {
	n := len(p.c)
	if shift >= n {
		for i := range p.c {
			p.c[i] = 0
		}
		return
	}
	for i := 1; i <= n-shift; i++ {
		p.c[n-i] = p.c[n-i-shift]
	}
	for i := 0; i < shift; i++ {
		p.c[i] = 0
	}
}

// Coef returns the α-logs of the coefficients, lowest degree first.
func (p Poly) Coef() []byte {
	out := make([]byte, len(p.c))
	for i, g := range p.c {
		out[i] = byte(logTable[g])
	}
	return out
}

// Generator returns the Reed–Solomon generator polynomial for n parity
// bytes: the product of (x + α^i) for i = 0..n−1.
func Generator(n int) Poly {
	genpoly := NewPoly(n)
	if n == 0 {
		return genpoly
	}
	genpoly.c[0] = 1
	if n > 1 {
		genpoly.c[1] = 1
	}
	tp := NewPoly(n)
	if n > 1 {
		tp.c[1] = 1
	}
	for i := 1; i < n; i++ {
		tp.c[0] = Elem(i % 256).Exp()
		genpoly = genpoly.Mul(tp)
	}
	return genpoly
}
