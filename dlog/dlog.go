// Package dlog recovers small discrete logarithms base g in the election
// group, the last step of every tally and ballot decryption: a plaintext
// vote count is always a small non-negative integer, so g^m can be
// inverted by table lookup instead of a general discrete-log algorithm.
//
// Grounded on the teacher's discrete-log table pattern in elgamal.go
// (which builds a map[string]int64 of small powers of g for plaintext
// recovery after exponential ElGamal decryption) and generalized to a
// baby-step/giant-step table so the bound can grow past a few hundred
// without a linear table scan per lookup.
package dlog

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/group"
)

// Table is a precomputed baby-step/giant-step discrete-log table for base
// g in a fixed group, supporting lookups of g^m for 0 <= m <= max.
type Table struct {
	gr       *group.Group
	max      int64
	stepSize int64

	mu        sync.RWMutex
	babySteps map[string]int64 // encodes g^j -> j for 0 <= j < stepSize
	giantStep *group.Element   // g^(-stepSize)
}

// NewTable builds a table able to recover any discrete log in [0, max].
// Construction cost is O(sqrt(max)) group operations and memory.
func NewTable(gr *group.Group, max int64) *Table {
	if max < 0 {
		max = 0
	}
	stepSize := isqrt(max) + 1

	t := &Table{
		gr:        gr,
		max:       max,
		stepSize:  stepSize,
		babySteps: make(map[string]int64, stepSize),
	}

	acc := gr.Identity()
	one := gr.ToBytesLeftPad(acc)
	t.babySteps[string(one)] = 0
	for j := int64(1); j < stepSize; j++ {
		acc = gr.Mul(acc, gr.G())
		t.babySteps[string(gr.ToBytesLeftPad(acc))] = j
	}

	// giant step is g^(-stepSize): acc is currently g^(stepSize-1), so one
	// more multiplication reaches g^stepSize, then invert.
	gStepSize := gr.Mul(acc, gr.G())
	inv, err := gr.Inv(gStepSize)
	if err != nil {
		panic(fmt.Sprintf("dlog: generator is not invertible: %v", err))
	}
	t.giantStep = inv

	return t
}

func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := big.NewInt(n)
	return new(big.Int).Sqrt(x).Int64()
}

// Recover finds m in [0, max] such that gr.GExp(m) == target, per the
// baby-step/giant-step algorithm. Returns an egerrors.IndexOutOfRange
// error if no such m exists within the table's bound.
func (t *Table) Recover(target *group.Element) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	gamma := target
	for i := int64(0); i*t.stepSize <= t.max; i++ {
		key := string(t.gr.ToBytesLeftPad(gamma))
		if j, ok := t.babySteps[key]; ok {
			m := i*t.stepSize + j
			if m <= t.max {
				return m, nil
			}
		}
		gamma = t.gr.Mul(gamma, t.giantStep)
	}

	return 0, &egerrors.IndexOutOfRange{Kind: "discrete log", Index: -1, Bound: int(t.max)}
}

// Max returns the table's upper recovery bound.
func (t *Table) Max() int64 { return t.max }
