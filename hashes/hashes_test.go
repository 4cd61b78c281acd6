package hashes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/index"
	"github.com/egguard/core/manifest"
	"github.com/egguard/core/params"
)

func testManifest(t *testing.T, label string) *manifest.Manifest {
	t.Helper()
	ci, err := index.FromOneBased[manifest.Contest](1)
	require.NoError(t, err)
	oi, err := index.FromOneBased[manifest.Option](1)
	require.NoError(t, err)
	bsIdx, err := index.FromOneBased[manifest.BallotStyle](1)
	require.NoError(t, err)

	return &manifest.Manifest{
		Label: label,
		Contests: []manifest.ContestDefinition{{
			Index:          ci,
			Label:          "Mayor",
			Options:        []manifest.ContestOption{{Index: oi, Label: "Alice"}},
			SelectionLimit: 1,
		}},
		BallotStyles: []manifest.BallotStyleDefinition{
			{Index: bsIdx, Label: "Precinct 1", Contests: []index.Index[manifest.Contest]{ci}},
		},
	}
}

func TestParameterHashIsDeterministic(t *testing.T) {
	a := ParameterHash(params.Standard())
	b := ParameterHash(params.Standard())
	require.Equal(t, a, b)
}

func TestParameterHashChangesWithVersion(t *testing.T) {
	fx := params.Standard()
	a := ParameterHash(fx)

	fx2 := params.Standard()
	fx2.EGDSVersion = "2.2"
	b := ParameterHash(fx2)
	require.NotEqual(t, a, b)
}

func TestBaseHashChangesWithManifest(t *testing.T) {
	hP := ParameterHash(params.Standard())
	vary := &params.Varying{N: 5, K: 3, ElectionDate: "2026-01-01", Label: "general"}

	a := BaseHash(hP, vary, testManifest(t, "General Election"))
	b := BaseHash(hP, vary, testManifest(t, "General Election (amended)"))
	require.NotEqual(t, a, b)
}

func TestBaseHashChangesWithVaryingParameters(t *testing.T) {
	hP := ParameterHash(params.Standard())
	m := testManifest(t, "General Election")

	a := BaseHash(hP, &params.Varying{N: 5, K: 3, ElectionDate: "2026-01-01", Label: "general"}, m)
	b := BaseHash(hP, &params.Varying{N: 5, K: 4, ElectionDate: "2026-01-01", Label: "general"}, m)
	require.NotEqual(t, a, b)
}

func TestBaseHashChangesWithParameterHash(t *testing.T) {
	vary := &params.Varying{N: 5, K: 3, ElectionDate: "2026-01-01", Label: "general"}
	m := testManifest(t, "General Election")

	hP1 := ParameterHash(params.Standard())
	fx2 := params.Standard()
	fx2.EGDSVersion = "2.2"
	hP2 := ParameterHash(fx2)

	require.NotEqual(t, BaseHash(hP1, vary, m), BaseHash(hP2, vary, m))
}
