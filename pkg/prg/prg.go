// Package prg derives contributor masks deterministically from a seed. The
// original toy implementation drove this with a bare linear congruential
// generator (rng_seed.wrapping_mul(1103515245).wrapping_add(12345)); the
// protocol explicitly allows substituting a stronger PRG as long as the
// contributor and the offline generator stay in agreement, so this package
// uses a ChaCha20 keystream instead, the same primitive the pack's own
// crypto package (cyphar-paperback) builds its stream cipher from.
package prg

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/threeparty/shuffledp/pkg/field"
)

// MaskStream produces a deterministic sequence of field elements from a
// 32-byte seed. A Stream is stateless across calls to Elements: calling it
// twice with the same n returns the same elements, which is what lets the
// contributor and the offline generator derive identical masks without
// exchanging anything.
type MaskStream struct {
	seed [32]byte
}

// NewMaskStream builds a MaskStream keyed on seed.
func NewMaskStream(seed [32]byte) *MaskStream {
	return &MaskStream{seed: seed}
}

// Elements draws n field elements from the keystream, reducing each 8-byte
// block modulo the field's prime. A fixed all-zero nonce is safe here
// because every seed is already unique per contributor and per session, via
// party.DeriveContributorSeed — chacha20 requires a key and nonce pair never
// repeat, and the seed derivation guarantees the key itself never repeats.
func (s *MaskStream) Elements(f *field.Field, n int) ([]field.Element, error) {
	cipher, err := chacha20.NewUnauthenticatedCipher(s.seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, err
	}

	out := make([]field.Element, n)
	buf := make([]byte, n*8)
	cipher.XORKeyStream(buf, buf)
	for i := 0; i < n; i++ {
		v := binary.BigEndian.Uint64(buf[i*8 : i*8+8])
		out[i] = f.Element(v)
	}
	return out, nil
}
