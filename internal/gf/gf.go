// Package gf implements arithmetic over GF(2⁸) with the primitive
// polynomial 0x11D used by QR Code Reed–Solomon coding, together with
// polynomials over that field and the Reed–Solomon encoder/decoder.
package gf

// Elem is an element of GF(2⁸) mod 0x11D. Addition is XOR; multiplication
// and division go through the log/exp tables with generator α = 2.
type Elem byte

// Add returns a + b. Subtraction is the same operation.
func (a Elem) Add(b Elem) Elem { return a ^ b }

// Mul returns a · b.
func (a Elem) Mul(b Elem) Elem {
	if a == 0 || b == 0 {
		return 0
	}
	i := int(logTable[a])
	j := int(logTable[b])
	return expTable[(i+j)%255]
}

// Div returns a / b. Division by zero is a programming error and panics,
// except that 0 divided by anything is 0.
func (a Elem) Div(b Elem) Elem {
	if a == 0 {
		return 0
	}
	if b == 0 {
		panic("gf: division by zero")
	}
	i := int(logTable[a])
	j := int(logTable[b])
	return expTable[(255+i-j)%255]
}

// Inv returns the multiplicative inverse of a for a ≥ 2. It reads
// expTable[255 − log(a)], so Inv(1) is expTable[255] = 0 and Inv(0) is 1.
func (a Elem) Inv() Elem {
	return expTable[255-logTable[a]]
}

// Exp returns α^a for a < 255; Exp(255) is 0.
func (a Elem) Exp() Elem { return expTable[a] }

// Log returns log_α(a). Log of zero is the 0xFF sentinel.
func (a Elem) Log() Elem { return logTable[a] }

// LogInv returns the log of the inverse of a, i.e. 255 − log(a).
func (a Elem) LogInv() Elem { return Elem(255 - logTable[a]) }
