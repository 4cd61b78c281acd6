package rangeproof

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/ciphertext"
	"github.com/egguard/core/csprng"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
)

func testGroup() (*group.Group, *field.Field) {
	gr := group.New(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	return gr, field.New(big.NewInt(11))
}

func TestProveVerifyZeroOne(t *testing.T) {
	gr, f := testGroup()
	var hE hashchain.Value
	secret := f.FromUint64(7)
	pk := gr.GExp(secret)

	for _, v := range []int{0, 1} {
		rnd := csprng.Insecure("range-test")
		nonce := f.FromUint64(4)
		c := ciphertext.Encrypt(gr, pk, f.FromUint64(uint64(v)), nonce)

		proof, err := Prove(gr, f, hE, pk, c, nonce, v, 1, rnd)
		require.NoError(t, err)
		require.NoError(t, Verify(gr, f, hE, pk, c, proof))
	}
}

func TestVerifyRejectsTamperedCiphertext(t *testing.T) {
	gr, f := testGroup()
	var hE hashchain.Value
	secret := f.FromUint64(7)
	pk := gr.GExp(secret)
	rnd := csprng.Insecure("range-test-2")

	nonce := f.FromUint64(3)
	c := ciphertext.Encrypt(gr, pk, f.FromUint64(1), nonce)
	proof, err := Prove(gr, f, hE, pk, c, nonce, 1, 1, rnd)
	require.NoError(t, err)

	tampered := &ciphertext.Ciphertext{Alpha: gr.Mul(c.Alpha, gr.G()), Beta: c.Beta}
	require.Error(t, Verify(gr, f, hE, pk, tampered, proof))
}

func TestProveRejectsValueOutsideRange(t *testing.T) {
	gr, f := testGroup()
	var hE hashchain.Value
	rnd := csprng.Insecure("range-test-3")
	secret := f.FromUint64(7)
	pk := gr.GExp(secret)
	nonce := f.FromUint64(2)
	c := ciphertext.Encrypt(gr, pk, f.FromUint64(2), nonce)

	_, err := Prove(gr, f, hE, pk, c, nonce, 2, 1, rnd)
	require.Error(t, err)
}

func TestSelectionLimitRangeLargerThanOne(t *testing.T) {
	gr, f := testGroup()
	var hE hashchain.Value
	rnd := csprng.Insecure("range-test-4")
	secret := f.FromUint64(7)
	pk := gr.GExp(secret)

	nonce := f.FromUint64(5)
	total := 2
	c := ciphertext.Encrypt(gr, pk, f.FromUint64(uint64(total)), nonce)

	proof, err := Prove(gr, f, hE, pk, c, nonce, total, 3, rnd)
	require.NoError(t, err)
	require.NoError(t, Verify(gr, f, hE, pk, c, proof))
}
