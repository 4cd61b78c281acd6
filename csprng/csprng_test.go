package csprng

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/field"
)

func TestDeterministicBySeed(t *testing.T) {
	g1 := New("ballot-nonce", []byte("election-1"))
	g2 := New("ballot-nonce", []byte("election-1"))

	require.Equal(t, g1.Bytes(32), g2.Bytes(32))
}

func TestDifferentLabelsDiverge(t *testing.T) {
	g1 := New("ballot-nonce", []byte("election-1"))
	g2 := New("guardian-coeff", []byte("election-1"))

	require.NotEqual(t, g1.Bytes(32), g2.Bytes(32))
}

func TestFieldElementInRange(t *testing.T) {
	q := big.NewInt(11)
	f := field.New(q)
	g := New("test")

	for i := 0; i < 50; i++ {
		e := g.FieldElement(f)
		require.True(t, f.IsValid(e))
	}
}

func TestInsecureIsReproducible(t *testing.T) {
	a := Insecure("fixture-1").Bytes(16)
	b := Insecure("fixture-1").Bytes(16)
	require.Equal(t, a, b)
}
