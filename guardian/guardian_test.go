package guardian

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/csprng"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/index"
)

func testGroup() (*group.Group, *field.Field) {
	gr := group.New(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	return gr, field.New(big.NewInt(11))
}

func TestGenerateAndVerifyPublicKey(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test")

	gIdx, err := index.FromOneBased[Guardian](1)
	require.NoError(t, err)

	sk, err := Generate(gr, f, hP, gIdx, 3, PurposeVote, rnd)
	require.NoError(t, err)
	require.Len(t, sk.Coefficients, 3)
	require.Len(t, sk.Proof.Responses, 4)

	pub := sk.Public()
	require.NoError(t, VerifyPublicKey(gr, f, hP, pub))
}

func TestTamperedProofFailsVerification(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test-2")

	gIdx, err := index.FromOneBased[Guardian](2)
	require.NoError(t, err)

	sk, err := Generate(gr, f, hP, gIdx, 2, PurposeVote, rnd)
	require.NoError(t, err)

	pub := sk.Public()
	pub.Proof.Responses[0] = f.Add(pub.Proof.Responses[0], f.One())

	require.Error(t, VerifyPublicKey(gr, f, hP, pub))
}

func TestTamperedCommsResponseFailsVerification(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test-2b")

	gIdx, err := index.FromOneBased[Guardian](2)
	require.NoError(t, err)

	sk, err := Generate(gr, f, hP, gIdx, 2, PurposeVote, rnd)
	require.NoError(t, err)

	pub := sk.Public()
	pub.Proof.Responses[len(pub.Proof.Responses)-1] = f.Add(pub.Proof.Responses[len(pub.Proof.Responses)-1], f.One())

	require.Error(t, VerifyPublicKey(gr, f, hP, pub))
}

func TestPurposeDataGeneratesAndVerifies(t *testing.T) {
	// pk_data is implemented but untested end-to-end beyond this proof
	// check, matching original_source's own documented gap.
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test-2c")

	gIdx, err := index.FromOneBased[Guardian](1)
	require.NoError(t, err)

	sk, err := Generate(gr, f, hP, gIdx, 2, PurposeData, rnd)
	require.NoError(t, err)
	require.NoError(t, VerifyPublicKey(gr, f, hP, sk.Public()))
}

func TestShareEvaluationAndVerification(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test-3")

	gIdx, err := index.FromOneBased[Guardian](1)
	require.NoError(t, err)
	sk, err := Generate(gr, f, hP, gIdx, 3, PurposeVote, rnd)
	require.NoError(t, err)

	recipient, err := index.FromOneBased[Guardian](2)
	require.NoError(t, err)

	share := sk.EvaluateShareFor(f, recipient)
	require.NoError(t, VerifyShare(gr, f, sk.Commitments, recipient, share))
}

func TestTamperedShareFailsVerification(t *testing.T) {
	gr, f := testGroup()
	var hP hashchain.Value
	rnd := csprng.Insecure("guardian-test-4")

	gIdx, err := index.FromOneBased[Guardian](1)
	require.NoError(t, err)
	sk, err := Generate(gr, f, hP, gIdx, 2, PurposeVote, rnd)
	require.NoError(t, err)

	recipient, err := index.FromOneBased[Guardian](2)
	require.NoError(t, err)

	share := sk.EvaluateShareFor(f, recipient)
	tampered := f.Add(share, f.One())

	require.Error(t, VerifyShare(gr, f, sk.Commitments, recipient, tampered))
}

func TestCombinedSecretKeyShareSumsShares(t *testing.T) {
	f := field.New(big.NewInt(11))
	a := f.FromUint64(3)
	b := f.FromUint64(5)
	got := CombinedSecretKeyShare(f, []*field.Element{a, b})
	require.True(t, got.Equal(f.FromUint64(8)))
}
