// Package sharing implements L2: (2,3) Shamir secret sharing over the
// pkg/field prime field, fixed to the protocol's three roles (Auxiliary,
// Comp1, Comp2) and their evaluation points 1, 2, 3. Reconstruction only
// ever needs two shares, matching the protocol's semi-honest, 1-of-3
// non-collusion assumption.
package sharing

import (
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

// Threshold is the minimum number of shares needed to reconstruct a secret.
const Threshold = 2

// NumShares is the total number of shares a secret is split into, one per
// role in party.Roles().
const NumShares = 3

// Share is one party's fragment of a shared secret: the role it was issued
// to, the polynomial's value at that role's point, and the point itself
// (carried alongside the value so reconstruction never has to consult a
// side table to know which point a share belongs to).
type Share struct {
	Role  party.Role
	Value field.Element
	Point field.Element
}

// ShareSecret splits secret into one Share per role in roles by evaluating a
// random degree-(Threshold-1) polynomial with constant term secret at each
// role's fixed point.
func ShareSecret(f *field.Field, secret field.Element, roles []party.Role) ([]Share, error) {
	const op = "sharing.ShareSecret"
	if len(roles) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}

	coefficients := make([]field.Element, Threshold)
	coefficients[0] = secret
	for i := 1; i < Threshold; i++ {
		coefficients[i] = f.Random()
	}

	shares := make([]Share, len(roles))
	for i, r := range roles {
		point := r.Point(f)
		value, err := evaluatePolynomial(coefficients, point)
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
		}
		shares[i] = Share{Role: r, Value: value, Point: point}
	}
	return shares, nil
}

func evaluatePolynomial(coefficients []field.Element, point field.Element) (field.Element, error) {
	if len(coefficients) == 0 {
		return field.Element{}, shuffleerr.New("sharing.evaluatePolynomial", shuffleerr.EmptyInput)
	}
	result := coefficients[0]
	power := point.Field().One()
	for _, c := range coefficients[1:] {
		var err error
		power, err = power.Mul(point)
		if err != nil {
			return field.Element{}, err
		}
		term, err := c.Mul(power)
		if err != nil {
			return field.Element{}, err
		}
		result, err = result.Add(term)
		if err != nil {
			return field.Element{}, err
		}
	}
	return result, nil
}

// ReconstructSecret recovers the shared secret via Lagrange interpolation at
// x=0, given at least Threshold shares. Fails with InsufficientShares if
// fewer are given.
func ReconstructSecret(f *field.Field, shares []Share) (field.Element, error) {
	const op = "sharing.ReconstructSecret"
	if len(shares) < Threshold {
		return field.Element{}, shuffleerr.New(op, shuffleerr.InsufficientShares)
	}

	secret := f.Zero()
	for i, si := range shares {
		numerator := f.One()
		denominator := f.One()
		for j, sj := range shares {
			if i == j {
				continue
			}
			var err error
			numerator, err = numerator.Mul(sj.Point.Neg())
			if err != nil {
				return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
			}
			diff, err := si.Point.Sub(sj.Point)
			if err != nil {
				return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
			}
			denominator, err = denominator.Mul(diff)
			if err != nil {
				return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
			}
		}
		lagrangeCoeff, err := numerator.Div(denominator)
		if err != nil {
			return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
		}
		contribution, err := si.Value.Mul(lagrangeCoeff)
		if err != nil {
			return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
		}
		secret, err = secret.Add(contribution)
		if err != nil {
			return field.Element{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
		}
	}
	return secret, nil
}

// ShareVector shares each element of secrets independently, returning one
// share-set per secret.
func ShareVector(f *field.Field, secrets []field.Element, roles []party.Role) ([][]Share, error) {
	const op = "sharing.ShareVector"
	if len(secrets) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	out := make([][]Share, len(secrets))
	for i, s := range secrets {
		shares, err := ShareSecret(f, s, roles)
		if err != nil {
			return nil, err
		}
		out[i] = shares
	}
	return out, nil
}

// ReconstructVector reconstructs each share-set in shares independently.
func ReconstructVector(f *field.Field, shares [][]Share) ([]field.Element, error) {
	const op = "sharing.ReconstructVector"
	if len(shares) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	out := make([]field.Element, len(shares))
	for i, group := range shares {
		v, err := ReconstructSecret(f, group)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ShareMatrix shares every element of a row-major matrix independently.
func ShareMatrix(f *field.Field, matrix [][]field.Element, roles []party.Role) ([][][]Share, error) {
	const op = "sharing.ShareMatrix"
	if len(matrix) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	out := make([][][]Share, len(matrix))
	for i, row := range matrix {
		rowShares, err := ShareVector(f, row, roles)
		if err != nil {
			return nil, err
		}
		out[i] = rowShares
	}
	return out, nil
}

// ReconstructMatrix reconstructs every row produced by ShareMatrix.
func ReconstructMatrix(f *field.Field, shares [][][]Share) ([][]field.Element, error) {
	const op = "sharing.ReconstructMatrix"
	if len(shares) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	out := make([][]field.Element, len(shares))
	for i, rowShares := range shares {
		row, err := ReconstructVector(f, rowShares)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

// AddShares adds two share-sets issued over the same roles at the same
// points, share-by-share. Together with MulByConstant, this is the only
// homomorphism the protocol relies on: it never needs to multiply two
// share-sets together, which would require an interactive re-sharing round.
func AddShares(a, b []Share) ([]Share, error) {
	const op = "sharing.AddShares"
	if len(a) != len(b) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	out := make([]Share, len(a))
	for i := range a {
		if a[i].Role != b[i].Role {
			return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
		}
		sum, err := a[i].Value.Add(b[i].Value)
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		out[i] = Share{Role: a[i].Role, Value: sum, Point: a[i].Point}
	}
	return out, nil
}

// MulByConstant scales every share in a share-set by a public constant.
// Because the constant is public (not itself a share), this stays linear
// and needs no interaction, unlike multiplying two secret-shared values.
func MulByConstant(shares []Share, constant field.Element) ([]Share, error) {
	const op = "sharing.MulByConstant"
	out := make([]Share, len(shares))
	for i, s := range shares {
		product, err := s.Value.Mul(constant)
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		out[i] = Share{Role: s.Role, Value: product, Point: s.Point}
	}
	return out, nil
}

// ShareFor returns the share issued to role r, if present.
func ShareFor(shares []Share, r party.Role) (Share, bool) {
	for _, s := range shares {
		if s.Role == r {
			return s, true
		}
	}
	return Share{}, false
}
