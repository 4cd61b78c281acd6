package extendedbasehash

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/csprng"
	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/guardian"
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/index"
)

func testGroup() (*group.Group, *field.Field) {
	gr := group.New(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	return gr, field.New(big.NewInt(11))
}

func makeKeys(t *testing.T, gr *group.Group, f *field.Field, hP hashchain.Value, n, k int) []*guardian.PublicKey {
	t.Helper()
	pubs := make([]*guardian.PublicKey, 0, n)
	for i := 1; i <= n; i++ {
		gIdx, err := index.FromOneBased[guardian.Guardian](i)
		require.NoError(t, err)
		rnd := csprng.Insecure("ebh-test")
		sk, err := guardian.Generate(gr, f, hP, gIdx, k, guardian.PurposeVote, rnd)
		require.NoError(t, err)
		pubs = append(pubs, sk.Public())
	}
	return pubs
}

func TestComputeRequiresCompleteGuardianSet(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	pubs := makeKeys(t, gr, f, hP, 3, 2)

	var hB hashchain.Value
	_, err := Compute(gr, f, hB, 3, pubs[:2])
	require.Error(t, err)
	var missing *egerrors.GuardiansMissing
	require.ErrorAs(t, err, &missing)
}

func TestComputeRejectsDuplicateGuardianIndex(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	pubs := makeKeys(t, gr, f, hP, 2, 2)
	pubs[1].GuardianIndex = pubs[0].GuardianIndex

	var hB hashchain.Value
	_, err := Compute(gr, f, hB, 2, pubs)
	require.Error(t, err)
	var dup *egerrors.GuardianMultiple
	require.ErrorAs(t, err, &dup)
}

func TestComputeIsOrderIndependent(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	pubs := makeKeys(t, gr, f, hP, 3, 2)

	var hB hashchain.Value
	forward, err := Compute(gr, f, hB, 3, []*guardian.PublicKey{pubs[0], pubs[1], pubs[2]})
	require.NoError(t, err)

	reversed, err := Compute(gr, f, hB, 3, []*guardian.PublicKey{pubs[2], pubs[0], pubs[1]})
	require.NoError(t, err)

	require.Equal(t, forward, reversed)
}

func TestComputeChangesWhenAnyKeyChanges(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	pubs := makeKeys(t, gr, f, hP, 3, 2)

	var hB hashchain.Value
	before, err := Compute(gr, f, hB, 3, pubs)
	require.NoError(t, err)

	pubs[1].Commitments[0] = gr.Mul(pubs[1].Commitments[0], gr.G())
	after, err := Compute(gr, f, hB, 3, pubs)
	require.NoError(t, err)

	require.NotEqual(t, before, after)
}

func TestDeviceHashChangesWithDeviceInfo(t *testing.T) {
	var hE hashchain.Value
	a := DeviceHash(hE, "")
	b := DeviceHash(hE, "device-1")
	require.NotEqual(t, a, b)

	c := DeviceHash(hE, "device-1")
	require.Equal(t, b, c)
}
