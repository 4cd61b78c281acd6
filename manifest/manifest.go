// Package manifest describes the static structure of an election: its
// contests, each contest's selectable options and selection limit, and
// the ballot styles that group contests into the ballots different voters
// receive. The manifest's canonical bytes are hashed into the election
// base hash H_B (package hashes), which in turn feeds the extended base
// hash H_E (package extendedbasehash), binding every ballot to one
// immutable definition of what a valid vote looks like.
package manifest

import (
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/index"
	"github.com/egguard/core/label"
)

// Marker types tagging the positional indices this package defines.
type Contest struct{}
type Option struct{}
type BallotStyle struct{}

// OptionLimitedOnlyByContest marks a ContestOption as carrying no
// independent per-option cap tighter than its contest's own
// SelectionLimit, mirroring original_source's
// OptionSelectionLimit::LimitedOnlyByContest variant.
const OptionLimitedOnlyByContest = ^uint64(0)

// ContestOption is one selectable option within a contest.
type ContestOption struct {
	Index index.Index[Option]
	Label string
	// SelectionLimit bounds how large this option's own encrypted value may
	// be (the per-option disjunctive range proof's R, spec section 4.5).
	// Zero is the ordinary single-select default (1), matching
	// original_source's OptionSelectionLimit::default(); a nonzero value
	// other than OptionLimitedOnlyByContest is an explicit per-option cap
	// (e.g. a write-in field allowing several marks); OptionLimitedOnlyByContest
	// removes any independent cap, falling back to the contest's own
	// SelectionLimit.
	SelectionLimit uint64
}

// EffectiveLimit resolves this option's own per-option bound against the
// contest's overall selection limit.
func (o *ContestOption) EffectiveLimit(contestLimit uint64) uint64 {
	switch o.SelectionLimit {
	case 0:
		return 1
	case OptionLimitedOnlyByContest:
		return contestLimit
	default:
		return o.SelectionLimit
	}
}

// ContestDefinition describes one contest: its options and the maximum
// number of options a voter may select (the "selection limit").
type ContestDefinition struct {
	Index          index.Index[Contest]
	Label          string
	Options        []ContestOption
	SelectionLimit uint64
}

// Validate checks internal consistency: labels are well-formed, option
// indices are contiguous starting at 1, and the selection limit does not
// exceed the combined per-option caps (a limit no combination of options
// could ever reach can never be exercised, and an all-zero option count
// makes no sense for a contest). An option with no independent cap
// (OptionLimitedOnlyByContest) can alone satisfy any contest limit, so its
// presence skips this upper-bound check.
func (c *ContestDefinition) Validate() error {
	if err := label.Validate(c.Label); err != nil {
		return err
	}
	if len(c.Options) == 0 {
		return &egerrors.LengthMismatch{What: "contest options", Wanted: 1, Got: 0}
	}
	if c.SelectionLimit == 0 {
		return &egerrors.ContestSelectionLimit{ContestIndex: c.Index.Int(), Limit: c.SelectionLimit}
	}
	maxTotal := uint64(0)
	unbounded := false
	for _, opt := range c.Options {
		if opt.SelectionLimit == OptionLimitedOnlyByContest {
			unbounded = true
			break
		}
		maxTotal += opt.EffectiveLimit(c.SelectionLimit)
	}
	if !unbounded && c.SelectionLimit > maxTotal {
		return &egerrors.ContestSelectionLimit{ContestIndex: c.Index.Int(), Limit: c.SelectionLimit}
	}
	for i, opt := range c.Options {
		if opt.Index.ZeroBased() != i {
			return &egerrors.IndexOutOfRange{Kind: "contest option", Index: opt.Index.Int(), Bound: len(c.Options)}
		}
		if err := label.Validate(opt.Label); err != nil {
			return err
		}
	}
	return nil
}

// BallotStyleDefinition names a subset of contests a particular class of
// voter receives (e.g. voters in one precinct get a different contest
// set than voters in another).
type BallotStyleDefinition struct {
	Index    index.Index[BallotStyle]
	Label    string
	Contests []index.Index[Contest] // indices into Manifest.Contests
}

// Manifest is the full static election definition.
type Manifest struct {
	Label        string
	Contests     []ContestDefinition
	BallotStyles []BallotStyleDefinition
}

// Validate checks every contest and ballot style, and that each ballot
// style only references contests that actually exist in the manifest.
func (m *Manifest) Validate() error {
	if err := label.Validate(m.Label); err != nil {
		return err
	}
	for i := range m.Contests {
		if m.Contests[i].Index.ZeroBased() != i {
			return &egerrors.IndexOutOfRange{Kind: "contest", Index: m.Contests[i].Index.Int(), Bound: len(m.Contests)}
		}
		if err := m.Contests[i].Validate(); err != nil {
			return err
		}
	}
	for i := range m.BallotStyles {
		bs := &m.BallotStyles[i]
		if err := label.Validate(bs.Label); err != nil {
			return err
		}
		for _, ci := range bs.Contests {
			if ci.ZeroBased() < 0 || ci.ZeroBased() >= len(m.Contests) {
				return &egerrors.ContestNotInBallotStyle{ContestIndex: ci.Int(), BallotStyleName: bs.Label}
			}
		}
	}
	return nil
}

// CanonicalBytes encodes the manifest for hashing into H_B (spec section
// 4.2): label, then each contest (index, label, selection limit, options),
// then each ballot style (label, referenced contest indices), all in
// declared order per the canonical sequence-encoding rule of spec section
// 6 (count prefix, then elements in order).
func (m *Manifest) CanonicalBytes() []byte {
	var buf []byte
	buf = append(buf, hashchain.LengthPrefixedString(m.Label)...)

	buf = append(buf, hashchain.BigEndianU32(uint32(len(m.Contests)))...)
	for _, c := range m.Contests {
		cIdxBytes := c.Index.BigEndian4Bytes()
		buf = append(buf, cIdxBytes[:]...)
		buf = append(buf, hashchain.LengthPrefixedString(c.Label)...)
		buf = append(buf, hashchain.BigEndianU32(uint32(c.SelectionLimit))...)
		buf = append(buf, hashchain.BigEndianU32(uint32(len(c.Options)))...)
		for _, o := range c.Options {
			oIdxBytes := o.Index.BigEndian4Bytes()
			buf = append(buf, oIdxBytes[:]...)
			buf = append(buf, hashchain.LengthPrefixedString(o.Label)...)
			buf = append(buf, hashchain.BigEndianU32(uint32(o.SelectionLimit))...)
		}
	}

	buf = append(buf, hashchain.BigEndianU32(uint32(len(m.BallotStyles)))...)
	for _, bs := range m.BallotStyles {
		buf = append(buf, hashchain.LengthPrefixedString(bs.Label)...)
		buf = append(buf, hashchain.BigEndianU32(uint32(len(bs.Contests)))...)
		for _, ci := range bs.Contests {
			ciBytes := ci.BigEndian4Bytes()
			buf = append(buf, ciBytes[:]...)
		}
	}
	return buf
}

// Contest looks up a contest definition by index.
func (m *Manifest) Contest(ci index.Index[Contest]) (*ContestDefinition, error) {
	zb := ci.ZeroBased()
	if zb < 0 || zb >= len(m.Contests) {
		return nil, &egerrors.IndexOutOfRange{Kind: "contest", Index: ci.Int(), Bound: len(m.Contests)}
	}
	return &m.Contests[zb], nil
}

// ContestsForStyle resolves a ballot style's contest indices into
// definitions, failing if the ballot style index is unknown.
func (m *Manifest) ContestsForStyle(bsIdx index.Index[BallotStyle]) ([]*ContestDefinition, error) {
	zb := bsIdx.ZeroBased()
	if zb < 0 || zb >= len(m.BallotStyles) {
		return nil, &egerrors.IndexOutOfRange{Kind: "ballot style", Index: bsIdx.Int(), Bound: len(m.BallotStyles)}
	}
	style := m.BallotStyles[zb]
	out := make([]*ContestDefinition, 0, len(style.Contests))
	for _, ci := range style.Contests {
		c, err := m.Contest(ci)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
