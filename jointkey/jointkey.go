// Package jointkey combines the per-guardian public key shares produced
// during the ceremony (package guardian) into the single joint public key
// ballots are encrypted under, and the symmetric check that guardian
// public keys reconstruct a previously-published joint key.
//
// Grounded on original_source/src/eg/src/joint_public_key.rs's
// JointPublicKey::compute (straight product of guardian public key shares
// across the subgroup, no Lagrange weighting — unlike partial decryption,
// the joint *key* combination step is plain multiplication since every
// guardian always contributes its full share at key-generation time).
package jointkey

import (
	"sort"

	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/group"
	"github.com/egguard/core/guardian"
)

// Purpose names what a joint key will be used for. Only Ballot keys form
// an actual joint public key under this module's current scope; other
// purposes named in the election manifest are rejected with
// NoJointPublicKeyForPurpose, matching spec section 4's "only the ballot
// encryption purpose forms a combinable key" rule.
type Purpose int

const (
	PurposeBallotEncryption Purpose = iota
	PurposeOther
)

// JointKey is the combined public key K = prod_i K_{i,0} mod p for a set
// of guardian public keys.
type JointKey struct {
	Purpose Purpose
	Key     *group.Element
}

// Compute multiplies each guardian's constant-term commitment together.
// pubs must contain exactly one entry per guardian index 1..n with no
// duplicates or gaps, checked before combination.
func Compute(gr *group.Group, purpose Purpose, n int, pubs []*guardian.PublicKey) (*JointKey, error) {
	if purpose != PurposeBallotEncryption {
		return nil, &egerrors.NoJointPublicKeyForPurpose{Purpose: "non-ballot-encryption purpose"}
	}

	if err := checkComplete(n, pubs); err != nil {
		return nil, err
	}

	acc := gr.Identity()
	for _, p := range pubs {
		share := p.PublicKeyShare()
		if share == nil || !gr.IsValid(share) {
			return nil, &egerrors.InvalidGroupElement{What: "guardian public key share"}
		}
		acc = gr.Mul(acc, share)
	}

	if acc.IsIdentity() {
		return nil, &egerrors.InvalidGroupElement{What: "joint public key"}
	}

	return &JointKey{Purpose: purpose, Key: acc}, nil
}

func checkComplete(n int, pubs []*guardian.PublicKey) error {
	seen := make(map[int]bool, len(pubs))
	for _, p := range pubs {
		idx := p.GuardianIndex.Int()
		if seen[idx] {
			return &egerrors.GuardianMultiple{Index: idx}
		}
		seen[idx] = true
	}

	var missing []int
	for i := 1; i <= n; i++ {
		if !seen[i] {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &egerrors.GuardiansMissing{Indices: missing}
	}
	return nil
}

// VerifyReconstruction checks that a previously-published joint key is
// exactly the product of the given (presumably newly re-verified)
// guardian public key shares, used when auditors want to confirm a
// published joint key's provenance without trusting whoever originally
// combined it.
func VerifyReconstruction(gr *group.Group, published *JointKey, n int, pubs []*guardian.PublicKey) error {
	recombined, err := Compute(gr, published.Purpose, n, pubs)
	if err != nil {
		return err
	}
	if !recombined.Key.Equal(published.Key) {
		return &egerrors.JointPKMismatch{}
	}
	return nil
}
