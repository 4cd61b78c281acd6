package group

import (
	"math/big"
	"testing"

	"github.com/egguard/core/field"
	"github.com/stretchr/testify/require"
)

// A tiny safe-prime group for fast tests: p = 2*11 + 1 = 23, q = 11, g = 2
// generates the order-11 subgroup of Z_23^*.
func tinyGroup(t *testing.T) (*Group, *field.Field) {
	t.Helper()
	p := big.NewInt(23)
	q := big.NewInt(11)
	g := big.NewInt(2)
	gr := New(p, q, g)
	require.True(t, gr.IsValid(gr.G()), "generator must validate")
	return gr, field.New(q)
}

func TestGroupGeneratorIsValid(t *testing.T) {
	gr, _ := tinyGroup(t)
	require.True(t, gr.IsValid(gr.G()))
	// -1 mod 23 has order 2, which does not divide the subgroup order 11.
	require.False(t, gr.IsValid(&Element{v: big.NewInt(22)}))
}

func TestGroupIdentity(t *testing.T) {
	gr, _ := tinyGroup(t)
	require.True(t, gr.Identity().IsIdentity())
	require.True(t, gr.IsValid(gr.Identity()))
}

func TestGroupExpAndInv(t *testing.T) {
	gr, f := tinyGroup(t)
	a, err := f.Random()
	require.NoError(t, err)

	h := gr.GExp(a)
	require.True(t, gr.IsValid(h))

	inv, err := gr.Inv(h)
	require.NoError(t, err)

	prod := gr.Mul(h, inv)
	require.True(t, prod.IsIdentity())
}

func TestGroupOrderQ(t *testing.T) {
	gr, _ := tinyGroup(t)
	h := FromBigInt(new(big.Int).Exp(gr.G().BigInt(), gr.Q(), gr.P()))
	require.True(t, h.IsIdentity(), "g^q must equal the identity")
}

func TestElementJSONRoundTrip(t *testing.T) {
	gr, f := tinyGroup(t)
	a, err := f.Random()
	require.NoError(t, err)
	h := gr.GExp(a)

	b, err := h.MarshalJSON()
	require.NoError(t, err)

	var got Element
	require.NoError(t, got.UnmarshalJSON(b))
	require.True(t, h.Equal(&got))
}

func TestElementCBORRoundTrip(t *testing.T) {
	gr, f := tinyGroup(t)
	a, err := f.Random()
	require.NoError(t, err)
	h := gr.GExp(a)

	b, err := h.MarshalCBOR()
	require.NoError(t, err)

	var got Element
	require.NoError(t, got.UnmarshalCBOR(b))
	require.True(t, h.Equal(&got))
}

func TestToBytesLeftPad(t *testing.T) {
	gr, _ := tinyGroup(t)
	b := gr.ToBytesLeftPad(gr.Identity())
	require.Len(t, b, gr.ByteLen())

	back := gr.SetBytes(b)
	require.True(t, back.Equal(gr.Identity()))
}
