package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egguard/core/label"
)

// labelInfo is a toy Info record standing in for a real wire record (e.g.
// a guardian public key record): its only check is that the label is
// well-formed, exercising the Info -> Validated promotion without pulling
// in a full package's worth of fixtures.
type labelInfo struct {
	Label string
}

type labelValidated struct {
	Label string
}

func (li labelInfo) Validate(ctx Context) (labelValidated, error) {
	if err := label.Validate(li.Label); err != nil {
		return labelValidated{}, err
	}
	return labelValidated{Label: li.Label}, nil
}

type fixedContext struct{ hash [32]byte }

func (f fixedContext) ElectionHash() ([32]byte, error) { return f.hash, nil }

func TestValidatedPromotesGoodRecord(t *testing.T) {
	info := labelInfo{Label: "Precinct 1"}
	got, err := Validated[labelValidated](info, fixedContext{})
	require.NoError(t, err)
	require.Equal(t, "Precinct 1", got.Label)
}

func TestValidatedRejectsBadRecord(t *testing.T) {
	info := labelInfo{Label: " bad label "}
	_, err := Validated[labelValidated](info, fixedContext{})
	require.Error(t, err)
}
