// Package field implements the prime-field layer (L1): field elements and
// the arithmetic the rest of the protocol is built on. Each element keeps its
// value both as a uint64 and as a github.com/cronokirby/saferith Nat, the
// same representation the teacher package uses for its curve scalars. The
// arithmetic runs on the uint64 view with math/bits and math/big; the Nat
// backs the canonical byte encoding (Bytes / ElementFromBytes).
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/cronokirby/saferith"

	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

// Field fixes a prime modulus for the lifetime of a protocol run. All
// Elements produced by a Field share its modulus; arithmetic between
// Elements from different Fields (or raw moduli) fails with
// shuffleerr.ModulusMismatch.
type Field struct {
	p    uint64
	mod  *saferith.Modulus
	pBig *big.Int
}

// New constructs a Field for the given prime modulus. Construction performs
// a trial-division primality check up to floor(sqrt(p)) — adequate because
// the modulus is configured once per run, not on a hot path. p must be
// representable so that a mul widened to 128 bits still reduces correctly;
// the protocol's recommended default is 2^64-59.
func New(p uint64) (*Field, error) {
	const op = "field.New"
	if p < 2 {
		return nil, shuffleerr.New(op, shuffleerr.NonPrimeModulus)
	}
	if !isPrime(p) {
		return nil, shuffleerr.New(op, shuffleerr.NonPrimeModulus)
	}
	pBig := new(big.Int).SetUint64(p)
	return &Field{
		p:    p,
		mod:  saferith.ModulusFromNat(new(saferith.Nat).SetUint64(p)),
		pBig: pBig,
	}, nil
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	if n%3 == 0 {
		return n == 3
	}
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Modulus returns the field's prime.
func (f *Field) Modulus() uint64 { return f.p }

// Zero returns the additive identity.
func (f *Field) Zero() Element { return f.Element(0) }

// One returns the multiplicative identity.
func (f *Field) One() Element { return f.Element(1) }

// Element constructs a field element from a raw value, reducing mod p.
func (f *Field) Element(value uint64) Element {
	v := value % f.p
	return Element{
		field: f,
		value: new(saferith.Nat).SetUint64(v),
		raw:   v,
	}
}

// Random returns an element uniform on [0, p). Callers that need [1, p)
// (e.g. nonzero evaluation points) must loop-reject zero themselves.
func (f *Field) Random() Element {
	return f.Element(randUint64Below(f.p))
}

// RandomNonzero loop-rejects zero, for callers that specifically need an
// element of [1, p).
func (f *Field) RandomNonzero() Element {
	for {
		if e := f.Random(); !e.IsZero() {
			return e
		}
	}
}

// randUint64Below draws a cryptographically strong uniform value in [0, n)
// via rejection sampling, avoiding modulo bias.
func randUint64Below(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// threshold = 2^64 - (2^64 mod n), the largest multiple of n not
	// exceeding 2^64; draws at or above it are rejected and redrawn so the
	// result is exactly uniform. Computed as -( -n % n) to stay in uint64
	// without representing 2^64 directly.
	threshold := -((-n) % n)
	if threshold == 0 {
		threshold = ^uint64(0) // n divides 2^64 exactly, i.e. n is a power of two
	}
	buf := make([]byte, 8)
	for {
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("field: crypto/rand failure: %v", err))
		}
		v := uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
			uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
		if v < threshold {
			return v % n
		}
	}
}

// Element is an immutable value in [0, p) for a fixed modulus p. "Mutation"
// always produces a new Element.
type Element struct {
	field *Field
	value *saferith.Nat
	raw   uint64 // cached uint64 view, kept in lockstep with value
}

// Field returns the Field this element belongs to.
func (e Element) Field() *Field { return e.field }

// Uint64 returns the element's value as a uint64 in [0, p).
func (e Element) Uint64() uint64 { return e.raw }

// IsZero reports whether the element is the additive identity.
func (e Element) IsZero() bool { return e.raw == 0 }

// IsOne reports whether the element is the multiplicative identity.
func (e Element) IsOne() bool { return e.raw == 1 }

func (e Element) String() string {
	if e.field == nil {
		return fmt.Sprintf("%d", e.raw)
	}
	return fmt.Sprintf("%d (mod %d)", e.raw, e.field.p)
}

// Equal compares two elements. Elements over different moduli are never
// equal (comparison never fails; use sameField to distinguish a true
// mismatch from honest inequality).
func (e Element) Equal(o Element) bool {
	if e.field == nil || o.field == nil || e.field.p != o.field.p {
		return false
	}
	return e.raw == o.raw
}

func sameField(op string, a, b Element) (*Field, error) {
	if a.field == nil || b.field == nil || a.field.p != b.field.p {
		return nil, shuffleerr.New(op, shuffleerr.ModulusMismatch)
	}
	return a.field, nil
}

// Add returns a+b mod p.
func (a Element) Add(b Element) (Element, error) {
	const op = "field.Add"
	f, err := sameField(op, a, b)
	if err != nil {
		return Element{}, err
	}
	sum := a.raw + b.raw
	if sum >= f.p {
		sum -= f.p
	}
	return wrap(f, sum), nil
}

// Sub returns a-b mod p, using p-(b-a) when b>a so the subtraction never
// underflows.
func (a Element) Sub(b Element) (Element, error) {
	const op = "field.Sub"
	f, err := sameField(op, a, b)
	if err != nil {
		return Element{}, err
	}
	var diff uint64
	if a.raw >= b.raw {
		diff = a.raw - b.raw
	} else {
		diff = f.p - (b.raw - a.raw)
	}
	return wrap(f, diff), nil
}

// Mul returns a*b mod p. The product is widened to 128 bits via
// math/bits.Mul64 before reduction; since a, b < p the high word is always
// below p, so bits.Div64 reduces correctly for any 64-bit modulus,
// including the default 2^64-59.
func (a Element) Mul(b Element) (Element, error) {
	const op = "field.Mul"
	f, err := sameField(op, a, b)
	if err != nil {
		return Element{}, err
	}
	hi, lo := bits.Mul64(a.raw, b.raw)
	_, rem := bits.Div64(hi, lo, f.p)
	return wrap(f, rem), nil
}

// Neg returns -a mod p (0 if a is zero, else p-a).
func (a Element) Neg() Element {
	if a.field == nil || a.raw == 0 {
		return a
	}
	return wrap(a.field, a.field.p-a.raw)
}

// Inverse returns a^-1 mod p via the extended Euclidean algorithm over
// big.Int (avoiding int64 overflow near the 2^63 modulus boundary).
// Fails with DivisionByZero for a=0, and NoInverse if gcd(a,p) != 1 — which
// cannot happen for a != 0 with a prime p, but is verified regardless since
// a corrupted Field would otherwise fail silently.
func (a Element) Inverse() (Element, error) {
	const op = "field.Inverse"
	if a.field == nil {
		return Element{}, shuffleerr.New(op, shuffleerr.ModulusMismatch)
	}
	if a.IsZero() {
		return Element{}, shuffleerr.New(op, shuffleerr.DivisionByZero)
	}
	aBig := new(big.Int).SetUint64(a.raw)
	gcd := new(big.Int)
	inv := new(big.Int)
	gcd.GCD(inv, nil, aBig, a.field.pBig)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return Element{}, shuffleerr.New(op, shuffleerr.NoInverse)
	}
	inv.Mod(inv, a.field.pBig)
	return wrap(a.field, inv.Uint64()), nil
}

// Div returns a/b mod p, i.e. a * b^-1.
func (a Element) Div(b Element) (Element, error) {
	const op = "field.Div"
	if _, err := sameField(op, a, b); err != nil {
		return Element{}, err
	}
	if b.IsZero() {
		return Element{}, shuffleerr.New(op, shuffleerr.DivisionByZero)
	}
	inv, err := b.Inverse()
	if err != nil {
		return Element{}, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
	}
	return a.Mul(inv)
}

// Pow returns a^e mod p via square-and-multiply.
func (a Element) Pow(e uint64) (Element, error) {
	if a.field == nil {
		return Element{}, shuffleerr.New("field.Pow", shuffleerr.ModulusMismatch)
	}
	result := a.field.One()
	base := a
	for e > 0 {
		if e&1 == 1 {
			var err error
			result, err = result.Mul(base)
			if err != nil {
				return Element{}, err
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		var err error
		base, err = base.Mul(base)
		if err != nil {
			return Element{}, err
		}
	}
	return result, nil
}

func wrap(f *Field, v uint64) Element {
	return Element{field: f, value: new(saferith.Nat).SetUint64(v), raw: v}
}

// Bytes returns the element's canonical 8-byte big-endian encoding, taken
// from its saferith.Nat representation. Used by pkg/transport to put field
// elements on the wire independently of the native uint64 layout.
func (e Element) Bytes() []byte {
	if e.value == nil {
		return make([]byte, 8)
	}
	raw := e.value.Bytes()
	out := make([]byte, 8)
	copy(out[8-len(raw):], raw)
	return out
}

// ElementFromBytes reconstructs an Element in f from its canonical 8-byte
// big-endian encoding.
func ElementFromBytes(f *Field, b []byte) Element {
	n := new(saferith.Nat).SetBytes(b)
	v := new(big.Int).SetBytes(b)
	v.Mod(v, f.pBig)
	return Element{field: f, value: n, raw: v.Uint64()}
}
