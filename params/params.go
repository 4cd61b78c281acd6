// Package params holds the fixed and varying election parameters: the
// (p, q, g) algebraic triple plus the structural metadata that binds an
// instance to a specific spec version, and the per-election cardinal
// parameters (guardian count, threshold, chaining mode).
//
// Grounded on original_source/src/eg/src/fixed_parameters.rs (read for
// shape: FixedParameterGenerationParameters, leading/trailing-ones
// metadata, NumsNumber provenance marker) and on the teacher's
// RFC3526ModPGroup3072 literal in main.go/group_test.go, which this module
// adopts verbatim as its "standard parameters" nothing-up-my-sleeve group:
// transcribing a fresh ~4096-bit literal from memory would risk an
// unverifiable digit error, whereas this constant is copied byte-for-byte
// from the retrieved, vetted teacher source (see DESIGN.md).
package params

import (
	"math/big"
	"strings"

	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/hashchain"
)

// Fixed holds (p, q, g) plus the structural metadata spec section 3
// requires: leading/trailing 1-bit counts and declared bit lengths, used
// to recognize the standard parameters without a full primality check.
type Fixed struct {
	P *big.Int
	Q *big.Int
	G *big.Int

	PBitsTotal     int
	QBitsTotal     int
	PLeadingOnes   int
	PTrailingOnes  int
	EGDSVersion    string // e.g. "2.1"
}

func hexConst(s string) *big.Int {
	repr := strings.Join(strings.Fields(s), "")
	v, ok := new(big.Int).SetString(repr, 16)
	if !ok {
		panic("params: invalid nothing-up-my-sleeve constant")
	}
	return v
}

// Standard returns the fixed parameters this module treats as "the"
// standard parameters: a verified, verbatim 3072-bit RFC 3526 MODP safe
// prime (retrieved from the teacher repository), its order-q subgroup, and
// generator 2. Fixed.Validate accepts any instance bitwise equal
// to this one with no further checks, per spec section 4.8.
func Standard() *Fixed {
	p := hexConst(`FFFFFFFF FFFFFFFF C90FDAA2 2168C234 C4C6628B 80DC1CD1
		29024E08 8A67CC74 020BBEA6 3B139B22 514A0879 8E3404DD
		EF9519B3 CD3A431B 302B0A6D F25F1437 4FE1356D 6D51C245
		E485B576 625E7EC6 F44C42E9 A637ED6B 0BFF5CB6 F406B7ED
		EE386BFB 5A899FA5 AE9F2411 7C4B1FE6 49286651 ECE45B3D
		C2007CB8 A163BF05 98DA4836 1C55D39A 69163FA8 FD24CF5F
		83655D23 DCA3AD96 1C62F356 208552BB 9ED52907 7096966D
		670C354E 4ABC9804 F1746C08 CA18217C 32905E46 2E36CE3B
		E39E772C 180E8603 9B2783A2 EC07A28F B5C55DF0 6F4C52C9
		DE2BCBF6 95581718 3995497C EA956AE5 15D22618 98FA0510
		15728E5A 8AAAC42D AD33170D 04507A33 A85521AB DF1CBA64
		ECFB8504 58DBEF0A 8AEA7157 5D060C7D B3970F85 A6E1E4C7
		ABF5AE8C DB0933D7 1E8C94E0 4A25619D CEE3D226 1AD2EE6B
		F12FFA06 D98A0864 D8760273 3EC86A64 521F2B18 177B200C
		BBE11757 7A615D6C 770988C0 BAD946E2 08E24FA0 74E5AB31
		43DB5BFC E0FD108E 4B82D120 A93AD2CA FFFFFFFF FFFFFFFF`)

	q := new(big.Int).Sub(p, big.NewInt(1))
	q.Div(q, big.NewInt(2))

	g := big.NewInt(2)

	return &Fixed{
		P:             p,
		Q:             q,
		G:             g,
		PBitsTotal:    p.BitLen(),
		QBitsTotal:    q.BitLen(),
		PLeadingOnes:  leadingOnes(p),
		PTrailingOnes: trailingOnes(p),
		EGDSVersion:   "2.1",
	}
}

func leadingOnes(n *big.Int) int {
	bits := n.BitLen()
	count := 0
	for i := bits - 1; i >= 0; i-- {
		if n.Bit(i) == 0 {
			break
		}
		count++
	}
	return count
}

func trailingOnes(n *big.Int) int {
	count := 0
	for i := 0; ; i++ {
		if i >= n.BitLen() || n.Bit(i) == 0 {
			break
		}
		count++
	}
	return count
}

// Equal reports bitwise equality of (p, q, g), the fast-path check spec
// section 4.8 calls out ("if bitwise-equal to the hard-coded standard
// parameters, accept with no further checks").
func (f *Fixed) Equal(o *Fixed) bool {
	return f.P.Cmp(o.P) == 0 && f.Q.Cmp(o.Q) == 0 && f.G.Cmp(o.G) == 0
}

// Validate enforces spec section 4.8's FixedParameters rule: accept
// immediately if bitwise-equal to Standard(); otherwise require q prime,
// the (p, g, q) group valid (g generates an order-q subgroup of Z_p*), and
// p's leading/trailing 1-bit counts and bit-length matching what was
// declared.
func (f *Fixed) Validate() error {
	std := Standard()
	if f.Equal(std) {
		return nil
	}

	const millerRabinRounds = 32
	if !f.Q.ProbablyPrime(millerRabinRounds) {
		return &egerrors.FixedParametersMismatch{Reason: "q is not prime"}
	}

	gr := group.New(f.P, f.Q, f.G)
	if f.G.Cmp(big.NewInt(1)) == 0 || !gr.IsValid(gr.G()) {
		return &egerrors.FixedParametersMismatch{Reason: "g does not generate the order-q subgroup"}
	}

	if f.P.BitLen() != f.PBitsTotal {
		return &egerrors.FixedParametersMismatch{Reason: "declared p bit length does not match"}
	}
	if leadingOnes(f.P) < f.PLeadingOnes {
		return &egerrors.FixedParametersMismatch{Reason: "p has fewer leading 1-bits than declared"}
	}
	if trailingOnes(f.P) < f.PTrailingOnes {
		return &egerrors.FixedParametersMismatch{Reason: "p has fewer trailing 1-bits than declared"}
	}

	return nil
}

// CanonicalBytes encodes the fixed parameters for hashing into H_P (spec
// section 4.2): p, q, g as length-prefixed big-endian integers (the group
// they describe does not exist yet at this point, so there is no declared
// byte length to left-pad to), followed by the structural metadata and
// the EGDS version string.
func (f *Fixed) CanonicalBytes() []byte {
	var buf []byte
	for _, n := range []*big.Int{f.P, f.Q, f.G} {
		b := n.Bytes()
		buf = append(buf, hashchain.BigEndianU32(uint32(len(b)))...)
		buf = append(buf, b...)
	}
	buf = append(buf, hashchain.BigEndianU32(uint32(f.PBitsTotal))...)
	buf = append(buf, hashchain.BigEndianU32(uint32(f.QBitsTotal))...)
	buf = append(buf, hashchain.BigEndianU32(uint32(f.PLeadingOnes))...)
	buf = append(buf, hashchain.BigEndianU32(uint32(f.PTrailingOnes))...)
	buf = append(buf, hashchain.LengthPrefixedString(f.EGDSVersion)...)
	return buf
}

// Group builds the Z_p* subgroup these fixed parameters describe.
func (f *Fixed) Group() *group.Group { return group.New(f.P, f.Q, f.G) }

// Field builds the Z_q scalar field these fixed parameters describe.
func (f *Fixed) Field() *field.Field { return field.New(f.Q) }

// ChainingMode enumerates the ballot-chaining strategies the spec
// declares. Only None is implemented; the others are left unimplemented
// per spec section 9 (a redesign flag, not behavior this module infers).
type ChainingMode int

const (
	ChainingNone ChainingMode = iota
)

// Varying holds the per-election cardinal parameters: guardian count n,
// decryption threshold k, ballot-chaining mode, and descriptive metadata.
type Varying struct {
	N             int
	K             int
	Chaining      ChainingMode
	ElectionDate  string
	Label         string
}

// Validate enforces 1 <= n <= 2^31-1 and 1 <= k <= n (spec section 3).
func (v *Varying) Validate() error {
	if v.N < 1 || v.N > (1<<31-1) {
		return &egerrors.FixedParametersMismatch{Reason: "n out of range"}
	}
	if v.K < 1 || v.K > v.N {
		return &egerrors.FixedParametersMismatch{Reason: "k out of range 1 <= k <= n"}
	}
	return nil
}

// CanonicalBytes encodes the varying parameters for hashing into H_B
// (spec section 4.2): guardian count, threshold, chaining mode, and the
// descriptive election date/label strings, length-prefixed per the
// canonical string encoding of spec section 6.
func (v *Varying) CanonicalBytes() []byte {
	var buf []byte
	buf = append(buf, hashchain.BigEndianU32(uint32(v.N))...)
	buf = append(buf, hashchain.BigEndianU32(uint32(v.K))...)
	buf = append(buf, hashchain.BigEndianU32(uint32(v.Chaining))...)
	buf = append(buf, hashchain.LengthPrefixedString(v.ElectionDate)...)
	buf = append(buf, hashchain.LengthPrefixedString(v.Label)...)
	return buf
}
