package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidLabel(t *testing.T) {
	require.NoError(t, Validate("Precinct 12 - Option A"))
}

func TestRejectsEmpty(t *testing.T) {
	require.Error(t, Validate(""))
}

func TestRejectsLeadingTrailingSpace(t *testing.T) {
	require.Error(t, Validate(" Option A"))
	require.Error(t, Validate("Option A "))
}

func TestRejectsRepeatedWhitespace(t *testing.T) {
	require.Error(t, Validate("Option  A"))
}

func TestRejectsControlCharacter(t *testing.T) {
	require.Error(t, Validate("Option\tA"))
}

func TestRejectsInvalidUTF8(t *testing.T) {
	require.Error(t, Validate(string([]byte{0xff, 0xfe})))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("  Option   A  ")
	require.Equal(t, "Option A", got)
	require.NoError(t, Validate(got))
}
