package sfgsim

import (
	"math"
	"math/cmplx"
)

// Number is the scalar value type flowing through a simulation: a
// complex double-precision number. Real-valued signals simply carry a
// zero imaginary part.
type Number complex128

// Real returns the real part of n.
func (n Number) Real() float64 { return real(complex128(n)) }

// Imag returns the imaginary part of n.
func (n Number) Imag() float64 { return imag(complex128(n)) }

// IsReal reports whether n has a zero imaginary part.
func (n Number) IsReal() bool { return n.Imag() == 0 }

// Add returns n + m.
func (n Number) Add(m Number) Number { return Number(complex128(n) + complex128(m)) }

// Sub returns n - m.
func (n Number) Sub(m Number) Number { return Number(complex128(n) - complex128(m)) }

// Mul returns n * m.
func (n Number) Mul(m Number) Number { return Number(complex128(n) * complex128(m)) }

// Div returns n / m.
func (n Number) Div(m Number) Number { return Number(complex128(n) / complex128(m)) }

// Conj returns the complex conjugate of n.
func (n Number) Conj() Number { return Number(cmplx.Conj(complex128(n))) }

// Sqrt returns the principal square root of n.
func (n Number) Sqrt() Number { return Number(cmplx.Sqrt(complex128(n))) }

// Abs returns the magnitude of n as a real-valued Number.
func (n Number) Abs() Number { return Number(complex(cmplx.Abs(complex128(n)), 0)) }

// Equal is bitwise equality on the real and imaginary components, as
// required by the data model (no epsilon fuzzing).
func (n Number) Equal(m Number) bool {
	return math.Float64bits(n.Real()) == math.Float64bits(m.Real()) &&
		math.Float64bits(n.Imag()) == math.Float64bits(m.Imag())
}

// RealNumber builds a Number with a zero imaginary part.
func RealNumber(r float64) Number { return Number(complex(r, 0)) }
