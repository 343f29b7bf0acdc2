package field

import "github.com/threeparty/shuffledp/pkg/shuffleerr"

// Vectors are plain []Element slices over a common Field.

// VectorAdd returns a+b element-wise. Requires len(a) == len(b).
func VectorAdd(a, b []Element) ([]Element, error) {
	const op = "field.VectorAdd"
	if len(a) != len(b) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	out := make([]Element, len(a))
	for i := range a {
		v, err := a[i].Add(b[i])
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		out[i] = v
	}
	return out, nil
}

// VectorSub returns a-b element-wise. Requires len(a) == len(b).
func VectorSub(a, b []Element) ([]Element, error) {
	const op = "field.VectorSub"
	if len(a) != len(b) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	out := make([]Element, len(a))
	for i := range a {
		v, err := a[i].Sub(b[i])
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		out[i] = v
	}
	return out, nil
}

// VectorHadamard returns the element-wise (Hadamard) product of a and b.
// Requires len(a) == len(b).
func VectorHadamard(a, b []Element) ([]Element, error) {
	const op = "field.VectorHadamard"
	if len(a) != len(b) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	out := make([]Element, len(a))
	for i := range a {
		v, err := a[i].Mul(b[i])
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		out[i] = v
	}
	return out, nil
}

// MatVec computes M*v for an r x c matrix M (r rows of length c) and a
// length-c vector v, returning a length-r vector. Requires cols(M) == len(v).
func MatVec(m [][]Element, v []Element) ([]Element, error) {
	const op = "field.MatVec"
	if len(m) == 0 || len(v) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	cols := len(m[0])
	if cols != len(v) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	f := v[0].Field()
	out := make([]Element, len(m))
	for i, row := range m {
		if len(row) != cols {
			return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
		}
		sum := f.Zero()
		for j, elem := range row {
			prod, err := elem.Mul(v[j])
			if err != nil {
				return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
			}
			sum, err = sum.Add(prod)
			if err != nil {
				return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
			}
		}
		out[i] = sum
	}
	return out, nil
}

// MatMul computes A*B for an r x k matrix A and a k x c matrix B, returning
// an r x c matrix. Requires cols(A) == rows(B).
func MatMul(a, b [][]Element) ([][]Element, error) {
	const op = "field.MatMul"
	if len(a) == 0 || len(b) == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	k := len(a[0])
	if k != len(b) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	cols := len(b[0])
	f := b[0][0].Field()
	out := make([][]Element, len(a))
	for i, row := range a {
		if len(row) != k {
			return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
		}
		out[i] = make([]Element, cols)
		for c := 0; c < cols; c++ {
			sum := f.Zero()
			for j := 0; j < k; j++ {
				if len(b[j]) != cols {
					return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
				}
				prod, err := row[j].Mul(b[j][c])
				if err != nil {
					return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
				}
				sum, err = sum.Add(prod)
				if err != nil {
					return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
				}
			}
			out[i][c] = sum
		}
	}
	return out, nil
}

// RandomVector returns a length-n vector of uniform elements.
func (f *Field) RandomVector(n int) []Element {
	out := make([]Element, n)
	for i := range out {
		out[i] = f.Random()
	}
	return out
}

// RandomMatrix returns an r x c matrix of uniform elements.
func (f *Field) RandomMatrix(rows, cols int) [][]Element {
	out := make([][]Element, rows)
	for i := range out {
		out[i] = f.RandomVector(cols)
	}
	return out
}
