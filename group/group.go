// Package group implements the multiplicative subgroup of Z_p* of prime
// order q generated by g, where p is a large safe prime (the 3072-bit
// prime of params.Standard for the standard parameters). This is the
// group exponential ElGamal encryption and the Chaum-Pedersen proofs
// operate in.
//
// The implementation is grounded on the teacher's ModPGroup/ModPElement
// (group/modsafeprime.go in the retrieved takakv/msc-poc repo), generalized
// from a single hard-coded demo group to an arbitrary parameterized
// (p, q, g), and completed with the JSON and CBOR marshaling methods
// the teacher's implementation never filled in.
package group

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/egguard/core/field"
)

// ErrNotInvertible is returned by Inv when the value has no modular
// inverse modulo p (i.e. it shares a factor with p).
var ErrNotInvertible = errors.New("group: element has no inverse")

// Group is Z_p* of order q generated by g. p must be a safe prime
// (p = 2q+1) for q itself prime; g must have order exactly q.
type Group struct {
	p *big.Int
	q *big.Int
	g *big.Int

	pLenByte int
}

// New constructs the group. Callers are expected to have validated
// (p, q, g) against the fixed parameters (see package params); New itself
// performs no primality checks, mirroring the teacher's NewModPGroup,
// which trusts its literal constants.
func New(p, q, g *big.Int) *Group {
	return &Group{
		p:        new(big.Int).Set(p),
		q:        new(big.Int).Set(q),
		g:        new(big.Int).Set(g),
		pLenByte: (p.BitLen() + 7) / 8,
	}
}

// P returns the field modulus p.
func (gr *Group) P() *big.Int { return new(big.Int).Set(gr.p) }

// Q returns the group order q.
func (gr *Group) Q() *big.Int { return new(big.Int).Set(gr.q) }

// G returns the generator.
func (gr *Group) G() *Element { return &Element{v: new(big.Int).Set(gr.g)} }

// ByteLen is the left-pad length used by ToBytesLeftPad.
func (gr *Group) ByteLen() int { return gr.pLenByte }

// Identity returns the group identity, 1.
func (gr *Group) Identity() *Element { return &Element{v: big.NewInt(1)} }

// Element is a value h in Z_p*. Validity (1 <= h < p and h^q = 1 mod p) is
// not an implicit invariant of the type: untrusted values must be checked
// with Group.IsValid before use, per spec section 4.8.
type Element struct {
	v *big.Int
}

// BigInt exposes the underlying value. Callers must not mutate it.
func (e *Element) BigInt() *big.Int { return e.v }

// FromBigInt wraps an already-reduced value as a group element without
// validity checking.
func FromBigInt(v *big.Int) *Element { return &Element{v: new(big.Int).Set(v)} }

// IsValid implements the group membership predicate of spec section 3:
// 1 <= h < p and h^q = 1 (mod p).
func (gr *Group) IsValid(e *Element) bool {
	if e.v.Sign() < 1 || e.v.Cmp(gr.p) >= 0 {
		return false
	}
	check := new(big.Int).Exp(e.v, gr.q, gr.p)
	return check.Cmp(big.NewInt(1)) == 0
}

// IsIdentity reports whether the element is the group identity.
func (e *Element) IsIdentity() bool { return e.v.Cmp(big.NewInt(1)) == 0 }

// Equal reports value equality.
func (e *Element) Equal(o *Element) bool { return e.v.Cmp(o.v) == 0 }

// Mul returns a*b mod p.
func (gr *Group) Mul(a, b *Element) *Element {
	v := new(big.Int).Mul(a.v, b.v)
	v.Mod(v, gr.p)
	return &Element{v: v}
}

// Exp returns a^s mod p for a field element s.
func (gr *Group) Exp(a *Element, s *field.Element) *Element {
	v := new(big.Int).Exp(a.v, s.BigInt(), gr.p)
	return &Element{v: v}
}

// GExp returns g^s mod p, the common case of exponentiating the generator.
func (gr *Group) GExp(s *field.Element) *Element {
	v := new(big.Int).Exp(gr.g, s.BigInt(), gr.p)
	return &Element{v: v}
}

// Inv returns a^-1 mod p.
func (gr *Group) Inv(a *Element) (*Element, error) {
	v := new(big.Int).ModInverse(a.v, gr.p)
	if v == nil {
		return nil, ErrNotInvertible
	}
	return &Element{v: v}, nil
}

// Random samples a uniformly random element of the subgroup by drawing a
// random exponent and returning g^r. Exists for test fixtures; it is not
// on the nonce-generation path (see package csprng), matching the
// teacher's ModPGroup.Random shape.
func (gr *Group) Random() (*Element, error) {
	r, err := rand.Int(rand.Reader, gr.q)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Exp(gr.g, r, gr.p)
	return &Element{v: v}, nil
}

// ToBytesLeftPad encodes the element as its minimum-length big-endian
// representation, left-padded with zeros to exactly Group.ByteLen() bytes.
func (gr *Group) ToBytesLeftPad(e *Element) []byte {
	out := make([]byte, gr.pLenByte)
	b := e.v.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

// SetBytes recovers an element from a big-endian byte representation.
// The caller must still call Group.IsValid before trusting the result.
func (gr *Group) SetBytes(b []byte) *Element {
	return &Element{v: new(big.Int).SetBytes(b)}
}

// String renders the element in decimal.
func (e *Element) String() string { return e.v.String() }

type elementJSON struct {
	V string `json:"v"`
}

// MarshalJSON renders the element as a decimal string wrapped in a JSON
// object, for canonical persisted-object encoding (spec section 6).
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{V: e.v.String()})
}

// UnmarshalJSON is the inverse of MarshalJSON. It does not validate group
// membership; callers validate via Group.IsValid.
func (e *Element) UnmarshalJSON(b []byte) error {
	var tmp elementJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(tmp.V, 10)
	if !ok {
		return errors.New("group: invalid element encoding")
	}
	e.v = v
	return nil
}

// MarshalCBOR renders the element as its plain big-endian byte string,
// for the CBOR-encoded persisted-record format spec section 6 names
// alongside JSON. Unlike ToBytesLeftPad, this does not pad to the group's
// byte length: CBOR's byte-string type already carries its own length, so
// there is nothing to disambiguate by padding.
func (e *Element) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(e.v.Bytes())
}

// UnmarshalCBOR is the inverse of MarshalCBOR. As with UnmarshalJSON, it
// performs no group-membership check; callers validate via Group.IsValid.
func (e *Element) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	e.v = new(big.Int).SetBytes(b)
	return nil
}
