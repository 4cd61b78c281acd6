// Package tally accumulates cast ballots into one homomorphic ciphertext
// per contest option: the encrypted tally for an option is simply the
// group-wise product of every cast ballot's ciphertext for that option,
// exploiting exponential ElGamal's additive homomorphism so no ballot
// ever needs to be individually decrypted.
//
// Grounded on original_source's tally_ballots.rs accumulation loop
// (summing per-contest-option ciphertexts across the cast-ballot set) and
// on the teacher's BallotData/ElGamalCiphertext shape it operates over.
package tally

import (
	"github.com/egguard/core/ballot"
	"github.com/egguard/core/ciphertext"
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/group"
	"github.com/egguard/core/index"
	"github.com/egguard/core/manifest"
)

// ContestTally is the homomorphically-accumulated ciphertext for each
// option in one contest, plus the number of ballots folded in.
type ContestTally struct {
	ContestIndex index.Index[manifest.Contest]
	Options      []*ciphertext.Ciphertext // parallel to the contest's option list
	BallotCount  int
}

// Tally is the accumulated encrypted tally across an entire manifest.
type Tally struct {
	Contests []ContestTally
}

// New builds a zero tally for every contest in m: every option initialized
// to the homomorphic-identity ciphertext (alpha, beta) = (1, 1).
func New(gr *group.Group, m *manifest.Manifest) *Tally {
	contests := make([]ContestTally, len(m.Contests))
	for i, c := range m.Contests {
		options := make([]*ciphertext.Ciphertext, len(c.Options))
		for j := range options {
			options[j] = ciphertext.Zero(gr)
		}
		contests[i] = ContestTally{ContestIndex: c.Index, Options: options}
	}
	return &Tally{Contests: contests}
}

// Accumulate folds one cast ballot into the running tally. The ballot
// must already have passed ballot.Verify; this function does not
// re-verify proofs, only shapes.
func (t *Tally) Accumulate(gr *group.Group, m *manifest.Manifest, b *ballot.EncryptedBallot) error {
	defs, err := m.ContestsForStyle(b.BallotStyleIndex)
	if err != nil {
		return err
	}
	if len(defs) != len(b.Contests) {
		return &egerrors.LengthMismatch{What: "tally accumulation contests", Wanted: len(defs), Got: len(b.Contests)}
	}

	for i, def := range defs {
		cb := b.Contests[i]
		ct := t.findContest(def.Index)
		if ct == nil {
			return &egerrors.IndexOutOfRange{Kind: "tally contest", Index: def.Index.Int(), Bound: len(t.Contests)}
		}
		if len(cb.Selections) != len(ct.Options) {
			return &egerrors.LengthMismatch{What: "tally accumulation options", Wanted: len(ct.Options), Got: len(cb.Selections)}
		}
		for j, sel := range cb.Selections {
			ct.Options[j] = ciphertext.Add(gr, ct.Options[j], sel.Ciphertext)
		}
		ct.BallotCount++
	}
	return nil
}

func (t *Tally) findContest(ci index.Index[manifest.Contest]) *ContestTally {
	for i := range t.Contests {
		if t.Contests[i].ContestIndex.Equal(ci) {
			return &t.Contests[i]
		}
	}
	return nil
}

// Contest looks up the accumulated tally for a contest by index.
func (t *Tally) Contest(ci index.Index[manifest.Contest]) (*ContestTally, error) {
	ct := t.findContest(ci)
	if ct == nil {
		return nil, &egerrors.IndexOutOfRange{Kind: "tally contest", Index: ci.Int(), Bound: len(t.Contests)}
	}
	return ct, nil
}
