// Package ciphertext implements exponential ElGamal encryption over the
// election group: a plaintext m is lifted to g^m before encryption, so
// homomorphic addition of ciphertexts (package tally) corresponds to
// addition of plaintexts, at the cost of needing a discrete-log recovery
// step (package dlog) to read the plaintext back out at decryption time.
//
// Grounded on the teacher's encryptVote in elgamal.go (alpha = g^r,
// beta = g^m * K^r), generalized from a hard-coded uint16 choice and
// global RNG call to an arbitrary field-element plaintext/nonce pair
// supplied by the caller, so nonces can be drawn from package csprng's
// seedable generator instead of crypto/rand directly.
package ciphertext

import (
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
)

// Ciphertext is an exponential ElGamal ciphertext (alpha, beta) =
// (g^r, g^m * K^r) for plaintext m, nonce r, and public key K.
type Ciphertext struct {
	Alpha *group.Element
	Beta  *group.Element
}

// Encrypt produces (alpha, beta) for plaintext m under public key pk
// with nonce r. The caller supplies r (typically drawn from package
// csprng) rather than this function sampling it, so that ballot-level
// nonce derivation (spec section 4.4's per-selection nonce schedule) stays
// under the ballot package's control.
func Encrypt(gr *group.Group, pk *group.Element, m *field.Element, r *field.Element) *Ciphertext {
	alpha := gr.GExp(r)
	liftedM := gr.GExp(m)
	mask := gr.Exp(pk, r)
	beta := gr.Mul(liftedM, mask)
	return &Ciphertext{Alpha: alpha, Beta: beta}
}

// IsValid checks that both components are valid, non-identity-required
// members of the election group, per spec section 4.4's ciphertext
// well-formedness rule (identity is permitted for alpha/beta individually;
// only membership is required here — selection-level proofs enforce the
// stronger constraints).
func (c *Ciphertext) IsValid(gr *group.Group) bool {
	return gr.IsValid(c.Alpha) && gr.IsValid(c.Beta)
}

// Add homomorphically combines two ciphertexts encrypted under the same
// key: (alpha1*alpha2, beta1*beta2) decrypts to m1+m2 mod q (in the
// exponent, so the *group* product of the lifted plaintexts, which is
// exact as long as m1+m2 does not wrap q — the selection-limit proof in
// package rangeproof is what keeps real tallies from ever approaching
// that bound).
func Add(gr *group.Group, a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{
		Alpha: gr.Mul(a.Alpha, b.Alpha),
		Beta:  gr.Mul(a.Beta, b.Beta),
	}
}

// Zero is the neutral element for Add: encrypting 0 with nonce 0 gives
// (identity, identity), which added to anything leaves it unchanged.
func Zero(gr *group.Group) *Ciphertext {
	return &Ciphertext{Alpha: gr.Identity(), Beta: gr.Identity()}
}

// DecryptToLiftedPlaintext removes the secret-key mask, returning g^m
// (the "lifted plaintext"); recovering m itself requires the
// discrete-log table in package dlog since m is expected to be small.
func DecryptToLiftedPlaintext(gr *group.Group, secretKey *field.Element, c *Ciphertext) (*group.Element, error) {
	mask := gr.Exp(c.Alpha, secretKey)
	maskInv, err := gr.Inv(mask)
	if err != nil {
		return nil, &egerrors.NoInverse{What: "ciphertext decryption mask"}
	}
	return gr.Mul(c.Beta, maskInv), nil
}
