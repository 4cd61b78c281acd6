// Package lagrange implements Lagrange interpolation at x=0 over the
// scalar field, in both its field-element and group-element forms: field
// interpolation recombines guardian secret-key shares (or any Shamir
// share), group interpolation recombines partial-decryption shares and
// commitments without ever reconstructing a secret in the clear.
//
// Grounded on original_source/src/eg/src/verifiable_decryption.rs's
// combination step (equations around "w_i" / lagrange coefficients) and
// generalized here into a single small package, used by package
// decryption.
package lagrange

import (
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
)

// CoefficientsAtZero computes, for each i in xs, the Lagrange basis
// coefficient w_i = prod_{j != i} xs[j] / (xs[j] - xs[i]), evaluated in the
// field f, i.e. the weight applied to party i's share when interpolating
// the polynomial's value at x=0 from the points {(xs[k], *)}.
func CoefficientsAtZero(f *field.Field, xs []int) ([]*field.Element, error) {
	n := len(xs)
	coeffs := make([]*field.Element, n)

	for i := 0; i < n; i++ {
		num := f.One()
		den := f.One()
		xi := f.FromUint64(uint64(xs[i]))

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			xj := f.FromUint64(uint64(xs[j]))
			num = f.Mul(num, xj)
			den = f.Mul(den, f.Sub(xj, xi))
		}

		denInv, err := f.Inv(den)
		if err != nil {
			return nil, &egerrors.NoInverse{What: "lagrange denominator"}
		}
		coeffs[i] = f.Mul(num, denInv)
	}

	return coeffs, nil
}

// FieldAtZero interpolates the value at x=0 of the unique degree-(n-1)
// polynomial passing through {(xs[i], ys[i])}, given field-element
// y-values (e.g. guardian secret-key shares).
func FieldAtZero(f *field.Field, xs []int, ys []*field.Element) (*field.Element, error) {
	if len(xs) != len(ys) {
		return nil, &egerrors.LengthMismatch{What: "lagrange xs/ys", Wanted: len(xs), Got: len(ys)}
	}
	coeffs, err := CoefficientsAtZero(f, xs)
	if err != nil {
		return nil, err
	}

	acc := f.Zero()
	for i, y := range ys {
		acc = f.Add(acc, f.Mul(coeffs[i], y))
	}
	return acc, nil
}

// GroupAtZero interpolates the value at x=0 in the exponent: given
// group-element y-values g^{y_i} (e.g. partial decryptions or
// commitments), it returns prod_i (g^{y_i})^{w_i} = g^{sum_i w_i*y_i},
// recombining without ever exposing the y_i values themselves.
func GroupAtZero(gr *group.Group, f *field.Field, xs []int, ys []*group.Element) (*group.Element, error) {
	if len(xs) != len(ys) {
		return nil, &egerrors.LengthMismatch{What: "lagrange xs/ys", Wanted: len(xs), Got: len(ys)}
	}
	coeffs, err := CoefficientsAtZero(f, xs)
	if err != nil {
		return nil, err
	}

	acc := gr.Identity()
	for i, y := range ys {
		acc = gr.Mul(acc, gr.Exp(y, coeffs[i]))
	}
	return acc, nil
}
