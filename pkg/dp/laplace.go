// Package dp generates the differential-privacy noise the offline phase
// shares into the protocol. The original toy implementation sampled a
// continuous Laplace variable and embedded it with `(|x| * 1000) mod p`,
// which both discards the sign (destroying the noise's zero-centered
// distribution) and quantizes it lossily. This package instead samples a
// discrete Laplace variable directly over the integers and embeds it into
// the field with two's-complement, so the embedding is exact and
// reversible instead of a lossy approximation.
package dp

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/threeparty/shuffledp/pkg/field"
)

// Label records the (epsilon, delta) privacy budget a noise draw was
// generated under, so a result can carry its own guarantees the way the
// original protocol's PrivacyGuarantees did.
type Label struct {
	Epsilon  float64
	Delta    float64
	IsProven bool
}

// Scale returns the discrete Laplace scale parameter for a given privacy
// budget and sensitivity, following the standard epsilon-DP construction
// scale = sensitivity / epsilon.
func Scale(epsilon, sensitivity float64) float64 {
	return sensitivity / epsilon
}

// SampleDiscreteLaplace draws one sample from the discrete Laplace
// (symmetric geometric) distribution with the given scale, as the difference
// of two geometric variables, each obtained by flooring an exponential draw
// taken from crypto/rand-backed uniform floats. The sample is an integer
// before it is embedded, so the embedding loses no magnitude information.
func SampleDiscreteLaplace(scale float64) (int64, error) {
	u1, err := randFloat()
	if err != nil {
		return 0, err
	}
	u2, err := randFloat()
	if err != nil {
		return 0, err
	}
	noise := math.Floor(-scale*math.Log(u1)) - math.Floor(-scale*math.Log(u2))
	return int64(noise), nil
}

func randFloat() (float64, error) {
	// 53 bits of entropy, the same precision as float64's mantissa, drawn
	// from crypto/rand rather than a non-cryptographic PRNG.
	max := big.NewInt(1 << 53)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, err
	}
	v := float64(n.Int64()+1) / float64(int64(1)<<53+1) // avoid exact 0 and 1
	return v, nil
}

// EmbedSigned maps a signed int64 into the field via two's-complement: a
// non-negative value maps to itself, a negative value v maps to p+v. This
// is exact and invertible by ExtractSigned, unlike the original's
// magnitude-only `(|x| * 1000) mod p` embedding.
func EmbedSigned(f *field.Field, v int64) field.Element {
	if v >= 0 {
		return f.Element(uint64(v))
	}
	p := f.Modulus()
	mag := uint64(-v)
	if mag >= p {
		mag %= p
	}
	return f.Element(p - mag)
}

// ExtractSigned inverts EmbedSigned, interpreting values above p/2 (integer
// division) as negative.
func ExtractSigned(e field.Element) int64 {
	p := e.Field().Modulus()
	v := e.Uint64()
	if v <= p/2 {
		return int64(v)
	}
	return -int64(p - v)
}

// NoiseMatrix draws n*d independent discrete Laplace samples at the given
// scale and embeds each into the field: one draw per (contributor,
// feature) pair, matching the per-coordinate privacy guarantee the
// protocol requires rather than sharing a single draw across a
// contributor's whole row.
func NoiseMatrix(f *field.Field, n, d int, scale float64) ([][]field.Element, error) {
	out := make([][]field.Element, n)
	for i := range out {
		row := make([]field.Element, d)
		for k := range row {
			s, err := SampleDiscreteLaplace(scale)
			if err != nil {
				return nil, err
			}
			row[k] = EmbedSigned(f, s)
		}
		out[i] = row
	}
	return out, nil
}
