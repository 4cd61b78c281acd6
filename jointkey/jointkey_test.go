package jointkey

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/csprng"
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

func threeGuardians(t *testing.T) []*guardian.PublicKey {
	t.Helper()
	gr, f := testGroup()
	var hP hashchain.Value

	var pubs []*guardian.PublicKey
	for i := 1; i <= 3; i++ {
		rnd := csprng.Insecure("joint-test")
		gIdx, err := index.FromOneBased[guardian.Guardian](i)
		require.NoError(t, err)
		sk, err := guardian.Generate(gr, f, hP, gIdx, 2, guardian.PurposeVote, rnd)
		require.NoError(t, err)
		pubs = append(pubs, sk.Public())
	}
	return pubs
}

func TestComputeJointKey(t *testing.T) {
	gr, _ := testGroup()
	pubs := threeGuardians(t)

	jk, err := Compute(gr, PurposeBallotEncryption, 3, pubs)
	require.NoError(t, err)
	require.True(t, gr.IsValid(jk.Key))
	require.False(t, jk.Key.IsIdentity())
}

func TestComputeRejectsMissingGuardian(t *testing.T) {
	gr, _ := testGroup()
	pubs := threeGuardians(t)

	_, err := Compute(gr, PurposeBallotEncryption, 4, pubs)
	require.Error(t, err)
}

func TestComputeRejectsNonBallotPurpose(t *testing.T) {
	gr, _ := testGroup()
	pubs := threeGuardians(t)

	_, err := Compute(gr, PurposeOther, 3, pubs)
	require.Error(t, err)
}

func TestVerifyReconstructionDetectsTamperedPublication(t *testing.T) {
	gr, _ := testGroup()
	pubs := threeGuardians(t)

	jk, err := Compute(gr, PurposeBallotEncryption, 3, pubs)
	require.NoError(t, err)

	tampered := &JointKey{Purpose: jk.Purpose, Key: gr.Mul(jk.Key, gr.G())}
	require.Error(t, VerifyReconstruction(gr, tampered, 3, pubs))
}
