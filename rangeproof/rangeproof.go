// Package rangeproof implements the disjunctive Chaum-Pedersen
// zero-knowledge range proof: given an exponential ElGamal ciphertext, it
// proves the encrypted plaintext lies in [0, R] without revealing which
// value it is. Each selectable option's ciphertext uses R = that option's
// effective selection limit, 1 for an ordinary option (spec section 4.5's
// per-option range proof); the homomorphic sum of a
// contest's option ciphertexts uses R = the contest's selection limit
// (the "selection limit" proof of the same section).
//
// Structurally grounded on the teacher's voteproof.SigmaProof (the
// Setup/Prove/Verify naming, and the commit/challenge/response struct
// split), generalized from the teacher's cross-group equality proof to
// the disjunctive OR-composition of R+1 Chaum-Pedersen proofs spec
// section 4.5 actually calls for; the challenge derivation itself uses
// package hashchain's keyed H rather than the teacher's raw sha256.
package rangeproof

import (
	"github.com/egguard/core/ciphertext"
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
)

// Branch is one disjunct's commitment/challenge/response triple, for the
// claim "the ciphertext encrypts value j".
type Branch struct {
	A *group.Element // commitment: g^u_j, or g^v_j * alpha^-c_j for a simulated branch (see simulateBranch)
	B *group.Element // commitment: pk^u_j, or pk^v_j * (beta/g^j)^-c_j for a simulated branch
	C *field.Element // this branch's challenge share
	V *field.Element // this branch's response
}

// Proof is the full disjunctive range proof: one branch per candidate
// value 0..R, plus the aggregate Fiat-Shamir challenge they must sum to.
type Proof struct {
	Branches  []Branch // Branches[j] corresponds to claimed value j
	Challenge *field.Element
}

type randomer interface {
	FieldElement(*field.Field) *field.Element
}

// Prove builds a disjunctive range proof that c encrypts actualValue,
// which must lie in [0, R]. The real branch is computed honestly; every
// other branch is simulated by picking its response and challenge share
// at random and solving for a consistent commitment, the standard
// Cramer-Damgard-Schoenmakers OR-proof technique.
func Prove(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, c *ciphertext.Ciphertext, nonce *field.Element, actualValue int, R int, rnd randomer) (*Proof, error) {
	if actualValue < 0 || actualValue > R {
		return nil, &egerrors.ContestSelectionLimit{Limit: uint64(R)}
	}

	branches := make([]Branch, R+1)
	// Simulate every branch except actualValue.
	for j := 0; j <= R; j++ {
		if j == actualValue {
			continue
		}
		cj := rnd.FieldElement(f)
		vj := rnd.FieldElement(f)
		branches[j] = simulateBranch(gr, f, pk, c, j, cj, vj)
	}

	// Honest commitment for the real branch.
	u := rnd.FieldElement(f)
	aReal := gr.GExp(u)
	bReal := gr.Exp(pk, u)

	material := challengeMaterial(gr, c, branches, actualValue, aReal, bReal)
	totalChallenge := hashchain.HQAsFieldElement(hE, material, f)

	// The real branch's challenge share is whatever makes all shares sum
	// to totalChallenge.
	sumOthers := f.Zero()
	for j := 0; j <= R; j++ {
		if j == actualValue {
			continue
		}
		sumOthers = f.Add(sumOthers, branches[j].C)
	}
	cReal := f.Sub(totalChallenge, sumOthers)
	vReal := f.Add(u, f.Mul(cReal, nonce))

	branches[actualValue] = Branch{A: aReal, B: bReal, C: cReal, V: vReal}

	return &Proof{Branches: branches, Challenge: totalChallenge}, nil
}

// simulateBranch picks a (c_j, v_j) pair and solves for the unique
// (A_j, B_j) that makes branch j's verification equations hold for the
// claimed value j, without knowing the real nonce.
//
// Verification requires:
//
//	g^{v_j} = A_j * alpha^{c_j}
//	pk^{v_j} = B_j * (beta / g^j)^{c_j}
//
// so A_j = g^{v_j} * alpha^{-c_j}, B_j = pk^{v_j} * (beta/g^j)^{-c_j}.
func simulateBranch(gr *group.Group, f *field.Field, pk *group.Element, c *ciphertext.Ciphertext, j int, cj, vj *field.Element) Branch {
	negC := f.Neg(cj)

	alphaInvC := gr.Exp(c.Alpha, negC)
	aj := gr.Mul(gr.GExp(vj), alphaInvC)

	liftedJ := gr.GExp(f.FromUint64(uint64(j)))
	liftedJInv, _ := gr.Inv(liftedJ)
	betaOverGJ := gr.Mul(c.Beta, liftedJInv)
	betaOverGJInvC := gr.Exp(betaOverGJ, negC)
	bj := gr.Mul(gr.Exp(pk, vj), betaOverGJInvC)

	return Branch{A: aj, B: bj, C: cj, V: vj}
}

func challengeMaterial(gr *group.Group, c *ciphertext.Ciphertext, branches []Branch, realIdx int, aReal, bReal *group.Element) []byte {
	var buf []byte
	buf = append(buf, gr.ToBytesLeftPad(c.Alpha)...)
	buf = append(buf, gr.ToBytesLeftPad(c.Beta)...)
	for j, br := range branches {
		a, b := br.A, br.B
		if j == realIdx {
			a, b = aReal, bReal
		}
		buf = append(buf, gr.ToBytesLeftPad(a)...)
		buf = append(buf, gr.ToBytesLeftPad(b)...)
	}
	return buf
}

// Verify checks a disjunctive range proof against the ciphertext and
// public key it was made for: every branch's equations must hold, and the
// branch challenge shares must sum to the recomputed Fiat-Shamir
// challenge.
func Verify(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, c *ciphertext.Ciphertext, p *Proof) error {
	if len(p.Branches) == 0 {
		return &egerrors.ProofNotPresent{}
	}

	sumC := f.Zero()
	for j, br := range p.Branches {
		if !gr.IsValid(br.A) || !gr.IsValid(br.B) {
			return &egerrors.CommitmentNotInGroup{Proof: "range proof branch"}
		}
		if !f.IsValid(br.C) || !f.IsValid(br.V) {
			return &egerrors.ResponseNotInField{Proof: "range proof branch"}
		}

		lhs1 := gr.GExp(br.V)
		rhs1 := gr.Mul(br.A, gr.Exp(c.Alpha, br.C))
		if !lhs1.Equal(rhs1) {
			return &egerrors.ProofDoesNotVerify{What: "range proof branch alpha equation"}
		}

		liftedJ := gr.GExp(f.FromUint64(uint64(j)))
		liftedJInv, err := gr.Inv(liftedJ)
		if err != nil {
			return &egerrors.NoInverse{What: "range proof lifted value"}
		}
		betaOverGJ := gr.Mul(c.Beta, liftedJInv)

		lhs2 := gr.Exp(pk, br.V)
		rhs2 := gr.Mul(br.B, gr.Exp(betaOverGJ, br.C))
		if !lhs2.Equal(rhs2) {
			return &egerrors.ProofDoesNotVerify{What: "range proof branch beta equation"}
		}

		sumC = f.Add(sumC, br.C)
	}

	material := challengeMaterial(gr, c, p.Branches, -1, nil, nil)
	totalChallenge := hashchain.HQAsFieldElement(hE, material, f)

	if !sumC.Equal(totalChallenge) {
		return &egerrors.ChallengeMismatch{Proof: "range proof"}
	}
	if !p.Challenge.Equal(totalChallenge) {
		return &egerrors.ChallengeMismatch{Proof: "range proof"}
	}

	return nil
}
