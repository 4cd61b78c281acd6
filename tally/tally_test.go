package tally

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/ballot"
	"github.com/egguard/core/ciphertext"
	"github.com/egguard/core/csprng"
	"github.com/egguard/core/dlog"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/index"
	"github.com/egguard/core/manifest"
)

func testSetup(t *testing.T) (*group.Group, *field.Field, *manifest.Manifest, index.Index[manifest.BallotStyle], *field.Element, *group.Element) {
	t.Helper()
	gr := group.New(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	f := field.New(big.NewInt(11))

	ci, err := index.FromOneBased[manifest.Contest](1)
	require.NoError(t, err)
	o1, err := index.FromOneBased[manifest.Option](1)
	require.NoError(t, err)
	o2, err := index.FromOneBased[manifest.Option](2)
	require.NoError(t, err)

	contest := manifest.ContestDefinition{
		Index: ci,
		Label: "Mayor",
		Options: []manifest.ContestOption{
			{Index: o1, Label: "Alice"},
			{Index: o2, Label: "Bob"},
		},
		SelectionLimit: 1,
	}
	bsIdx, err := index.FromOneBased[manifest.BallotStyle](1)
	require.NoError(t, err)

	m := &manifest.Manifest{
		Label:        "General",
		Contests:     []manifest.ContestDefinition{contest},
		BallotStyles: []manifest.BallotStyleDefinition{{Index: bsIdx, Label: "Precinct 1", Contests: []index.Index[manifest.Contest]{ci}}},
	}
	require.NoError(t, m.Validate())

	secret := f.FromUint64(7)
	pk := gr.GExp(secret)

	return gr, f, m, bsIdx, secret, pk
}

func TestAccumulateThreeBallots(t *testing.T) {
	gr, f, m, bsIdx, secret, pk := testSetup(t)
	var hE hashchain.Value

	tl := New(gr, m)

	votes := [][]int{{1, 0}, {1, 0}, {0, 1}}
	for _, v := range votes {
		rnd := csprng.Insecure("tally-test")
		b, err := ballot.EncryptBallot(gr, f, hE, pk, m, bsIdx, map[int][]int{1: v}, rnd)
		require.NoError(t, err)
		require.NoError(t, tl.Accumulate(gr, m, b))
	}

	ci, err := index.FromOneBased[manifest.Contest](1)
	require.NoError(t, err)
	ct, err := tl.Contest(ci)
	require.NoError(t, err)
	require.Equal(t, 3, ct.BallotCount)

	tbl := dlog.NewTable(gr, 3)

	liftedAlice, err := ciphertext.DecryptToLiftedPlaintext(gr, secret, ct.Options[0])
	require.NoError(t, err)
	countAlice, err := tbl.Recover(liftedAlice)
	require.NoError(t, err)
	require.Equal(t, int64(2), countAlice)

	liftedBob, err := ciphertext.DecryptToLiftedPlaintext(gr, secret, ct.Options[1])
	require.NoError(t, err)
	countBob, err := tbl.Recover(liftedBob)
	require.NoError(t, err)
	require.Equal(t, int64(1), countBob)
}

func TestAccumulateRejectsMismatchedBallotStyle(t *testing.T) {
	gr, _, m, _, _, _ := testSetup(t)
	tl := New(gr, m)

	badBsIdx, err := index.FromOneBased[manifest.BallotStyle](2)
	require.NoError(t, err)
	b := &ballot.EncryptedBallot{BallotStyleIndex: badBsIdx}

	require.Error(t, tl.Accumulate(gr, m, b))
}
