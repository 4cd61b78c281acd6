// Package ballot assembles a voter's selections into an encrypted ballot:
// one ciphertext and range proof per selectable option, a homomorphic
// per-contest total with its selection-limit proof, and a confirmation
// code chaining every contest together so the whole ballot can be
// referenced by a single short value.
//
// Grounded on the teacher's BallotData (voter.go) for the overall shape
// (a struct bundling a ciphertext with its proofs, json-tagged for
// persistence), generalized from the teacher's single-ciphertext-per-
// ballot demo to the manifest-driven per-contest-per-option vectors spec
// section 4.5/4.6 describes, and on original_source's
// contest_data_fields_ciphertexts.rs for the confirmation-code chaining
// idea (each contest's hash feeds into the next).
package ballot

import (
	"github.com/google/uuid"

	"github.com/egguard/core/ciphertext"
	"github.com/egguard/core/csprng"
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/index"
	"github.com/egguard/core/manifest"
	"github.com/egguard/core/rangeproof"
)

// Selection is one selectable option's encrypted vote and its range
// proof that the encrypted value lies between 0 and the option's
// effective selection limit (ordinarily 1, but wider for options like
// write-in fields that carry their own ContestOption.SelectionLimit).
type Selection struct {
	OptionIndex index.Index[manifest.Option] `json:"optionIndex"`
	Ciphertext  *ciphertext.Ciphertext       `json:"ciphertext"`
	Proof       *rangeproof.Proof            `json:"proof"`
}

// ContestBallot is one contest's encrypted selections plus the
// homomorphic total and its selection-limit range proof.
type ContestBallot struct {
	ContestIndex   index.Index[manifest.Contest] `json:"contestIndex"`
	Selections     []Selection                   `json:"selections"`
	Total          *ciphertext.Ciphertext        `json:"total"`
	TotalProof     *rangeproof.Proof             `json:"totalProof"`
	ConfirmationID hashchain.Value               `json:"confirmationId"`
}

// EncryptedBallot is a complete voted ballot: one ContestBallot per
// contest in the voter's ballot style, chained into a single
// confirmation code. CastingID is a locally-generated identifier for the
// casting session the ballot belongs to (e.g. a voting-device session),
// distinct from the confirmation code, which is derived from the
// ballot's own contents rather than assigned by the device.
type EncryptedBallot struct {
	CastingID        uuid.UUID                         `json:"castingId"`
	BallotStyleIndex index.Index[manifest.BallotStyle] `json:"ballotStyleIndex"`
	Contests         []ContestBallot                   `json:"contests"`
	ConfirmationCode hashchain.Value                    `json:"confirmationCode"`
}

// EncryptContest encrypts one contest's plaintext selections (selections[i]
// corresponding to def.Options[i], each bounded by that option's own
// EffectiveLimit rather than a fixed 0/1) under pk, producing per-option
// ciphertexts/proofs, the homomorphic total, and its selection-limit proof,
// chained to prevHash (the previous contest's confirmation id, or the zero
// value for the first contest in a ballot).
func EncryptContest(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, def *manifest.ContestDefinition, selections []int, prevHash hashchain.Value, rnd *csprng.Generator) (*ContestBallot, error) {
	if len(selections) != len(def.Options) {
		return nil, &egerrors.LengthMismatch{What: "contest selections", Wanted: len(def.Options), Got: len(selections)}
	}

	out := make([]Selection, len(selections))
	total := ciphertext.Zero(gr)
	totalNonce := f.Zero()
	sum := uint64(0)

	for i, v := range selections {
		limit := def.Options[i].EffectiveLimit(def.SelectionLimit)
		if v < 0 || uint64(v) > limit {
			return nil, &egerrors.ContestSelectionLimit{ContestIndex: def.Index.Int(), Limit: limit}
		}
		sum += uint64(v)

		nonce := rnd.FieldElement(f)
		m := f.FromUint64(uint64(v))
		c := ciphertext.Encrypt(gr, pk, m, nonce)

		proof, err := rangeproof.Prove(gr, f, hE, pk, c, nonce, v, int(limit), rnd)
		if err != nil {
			return nil, err
		}

		out[i] = Selection{OptionIndex: def.Options[i].Index, Ciphertext: c, Proof: proof}
		total = ciphertext.Add(gr, total, c)
		totalNonce = f.Add(totalNonce, nonce)
	}

	if sum > def.SelectionLimit {
		return nil, &egerrors.ContestSelectionLimit{ContestIndex: def.Index.Int(), Limit: def.SelectionLimit}
	}

	totalProof, err := rangeproof.Prove(gr, f, hE, pk, total, totalNonce, int(sum), int(def.SelectionLimit), rnd)
	if err != nil {
		return nil, err
	}

	cb := ContestBallot{
		ContestIndex: def.Index,
		Selections:   out,
		Total:        total,
		TotalProof:   totalProof,
	}
	cb.ConfirmationID = contestHash(gr, prevHash, &cb)

	return &cb, nil
}

func contestHash(gr *group.Group, prevHash hashchain.Value, cb *ContestBallot) hashchain.Value {
	var buf []byte
	buf = append(buf, hashchain.BigEndianU32(cb.ContestIndex.Uint32())...)
	for _, sel := range cb.Selections {
		buf = append(buf, gr.ToBytesLeftPad(sel.Ciphertext.Alpha)...)
		buf = append(buf, gr.ToBytesLeftPad(sel.Ciphertext.Beta)...)
	}
	buf = append(buf, gr.ToBytesLeftPad(cb.Total.Alpha)...)
	buf = append(buf, gr.ToBytesLeftPad(cb.Total.Beta)...)
	return hashchain.H(prevHash, buf)
}

// VerifyContest checks every selection's range proof and the contest
// total's selection-limit proof, and that the recomputed confirmation id
// matches the one carried on the contest ballot.
func VerifyContest(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, def *manifest.ContestDefinition, cb *ContestBallot, prevHash hashchain.Value) error {
	if len(cb.Selections) != len(def.Options) {
		return &egerrors.WrongNumberOfCiphertextProofs{ContestIndex: def.Index.Int(), NumProofs: len(cb.Selections), NumOptions: len(def.Options)}
	}

	recombined := ciphertext.Zero(gr)
	for i, sel := range cb.Selections {
		if sel.Proof == nil {
			return &egerrors.ProofNotPresent{ContestIndex: def.Index.Int(), OptionIndex: i}
		}
		if !sel.Ciphertext.IsValid(gr) {
			return &egerrors.InvalidGroupElement{What: "selection ciphertext"}
		}
		if err := rangeproof.Verify(gr, f, hE, pk, sel.Ciphertext, sel.Proof); err != nil {
			return err
		}
		recombined = ciphertext.Add(gr, recombined, sel.Ciphertext)
	}

	if !recombined.Alpha.Equal(cb.Total.Alpha) || !recombined.Beta.Equal(cb.Total.Beta) {
		return &egerrors.ProofDoesNotVerify{What: "contest total does not match sum of selections"}
	}

	if cb.TotalProof == nil {
		return &egerrors.ProofNotPresent{ContestIndex: def.Index.Int()}
	}
	if err := rangeproof.Verify(gr, f, hE, pk, cb.Total, cb.TotalProof); err != nil {
		return err
	}

	if contestHash(gr, prevHash, cb) != cb.ConfirmationID {
		return &egerrors.HashMismatch{What: "contest confirmation id"}
	}

	return nil
}

// EncryptBallot encrypts every contest in a voter's ballot style, chaining
// confirmation ids across contests, and derives the overall ballot
// confirmation code from the last contest's id.
func EncryptBallot(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, m *manifest.Manifest, bsIdx index.Index[manifest.BallotStyle], selections map[int][]int, rnd *csprng.Generator) (*EncryptedBallot, error) {
	defs, err := m.ContestsForStyle(bsIdx)
	if err != nil {
		return nil, err
	}

	contests := make([]ContestBallot, len(defs))
	prev := hashchain.Value{}
	for i, def := range defs {
		sel, ok := selections[def.Index.Int()]
		if !ok {
			return nil, &egerrors.ContestNotInBallotStyle{ContestIndex: def.Index.Int()}
		}
		cb, err := EncryptContest(gr, f, hE, pk, def, sel, prev, rnd)
		if err != nil {
			return nil, err
		}
		contests[i] = *cb
		prev = cb.ConfirmationID
	}

	return &EncryptedBallot{CastingID: uuid.New(), BallotStyleIndex: bsIdx, Contests: contests, ConfirmationCode: prev}, nil
}

// Verify checks every contest ballot in turn against the manifest's
// definitions, and that the chained confirmation code matches.
func Verify(gr *group.Group, f *field.Field, hE hashchain.Value, pk *group.Element, m *manifest.Manifest, b *EncryptedBallot) error {
	defs, err := m.ContestsForStyle(b.BallotStyleIndex)
	if err != nil {
		return err
	}
	if len(defs) != len(b.Contests) {
		return &egerrors.LengthMismatch{What: "ballot contests", Wanted: len(defs), Got: len(b.Contests)}
	}

	prev := hashchain.Value{}
	for i, def := range defs {
		if err := VerifyContest(gr, f, hE, pk, def, &b.Contests[i], prev); err != nil {
			return err
		}
		prev = b.Contests[i].ConfirmationID
	}

	if prev != b.ConfirmationCode {
		return &egerrors.HashMismatch{What: "ballot confirmation code"}
	}
	return nil
}
