// Package field implements arithmetic in the scalar field Z_q used
// throughout the election cryptography: nonces, secret coefficients,
// proof challenges and responses are all field elements.
package field

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// ErrNotInvertible is returned by Inv when the receiver is the additive
// identity, which has no multiplicative inverse.
var ErrNotInvertible = errors.New("field: element has no inverse")

// Field is the scalar field Z_q for a prime q.
type Field struct {
	q       *big.Int
	lenByte int
}

// New builds the field Z_q. q must be prime; the caller is responsible for
// that check (callers validate q as part of FixedParameters validation).
func New(q *big.Int) *Field {
	return &Field{q: new(big.Int).Set(q), lenByte: byteLen(q)}
}

func byteLen(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// Order returns q.
func (f *Field) Order() *big.Int { return new(big.Int).Set(f.q) }

// ByteLen is the left-pad length used by ToBytesLeftPad.
func (f *Field) ByteLen() int { return f.lenByte }

// Element is a value in [0, q).
type Element struct {
	v *big.Int
}

// Zero returns the additive identity 0.
func (f *Field) Zero() *Element { return &Element{v: big.NewInt(0)} }

// One returns the multiplicative identity 1.
func (f *Field) One() *Element { return &Element{v: big.NewInt(1)} }

// FromUint64 lifts a non-negative integer into the field, reducing mod q.
func (f *Field) FromUint64(x uint64) *Element {
	v := new(big.Int).SetUint64(x)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// FromBigInt reduces x modulo q and wraps it as a field element.
func (f *Field) FromBigInt(x *big.Int) *Element {
	v := new(big.Int).Mod(x, f.q)
	return &Element{v: v}
}

// Random draws a uniformly random element of Z_q using crypto/rand.
func (f *Field) Random() (*Element, error) {
	v, err := rand.Int(rand.Reader, f.q)
	if err != nil {
		return nil, err
	}
	return &Element{v: v}, nil
}

// FromBytes decodes a big-endian byte string, reducing modulo q. Used for
// deriving field elements from hash output (eg_h_q_as_field_element).
func (f *Field) FromBytes(b []byte) *Element {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// IsValid reports whether 0 <= x < q.
func (f *Field) IsValid(e *Element) bool {
	return e.v.Sign() >= 0 && e.v.Cmp(f.q) < 0
}

// BigInt returns the element's value as a big.Int. The caller must not
// mutate the result.
func (e *Element) BigInt() *big.Int { return e.v }

// IsZero reports whether the element is the additive identity.
func (e *Element) IsZero() bool { return e.v.Sign() == 0 }

// Equal reports value equality.
func (e *Element) Equal(o *Element) bool { return e.v.Cmp(o.v) == 0 }

// Add returns e + o mod q.
func (f *Field) Add(e, o *Element) *Element {
	v := new(big.Int).Add(e.v, o.v)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// Sub returns e - o mod q.
func (f *Field) Sub(e, o *Element) *Element {
	v := new(big.Int).Sub(e.v, o.v)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// Mul returns e * o mod q.
func (f *Field) Mul(e, o *Element) *Element {
	v := new(big.Int).Mul(e.v, o.v)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// Neg returns -e mod q.
func (f *Field) Neg(e *Element) *Element {
	v := new(big.Int).Neg(e.v)
	v.Mod(v, f.q)
	return &Element{v: v}
}

// Inv returns the multiplicative inverse of e via the extended Euclidean
// algorithm (big.Int.ModInverse). Fails iff e is zero.
func (f *Field) Inv(e *Element) (*Element, error) {
	if e.IsZero() {
		return nil, ErrNotInvertible
	}
	v := new(big.Int).ModInverse(e.v, f.q)
	if v == nil {
		return nil, ErrNotInvertible
	}
	return &Element{v: v}, nil
}

// ToBytesLeftPad encodes the element as the minimum-length big-endian
// representation, left-padded with zeros to exactly f.ByteLen() bytes.
func (f *Field) ToBytesLeftPad(e *Element) []byte {
	out := make([]byte, f.lenByte)
	b := e.v.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

// String renders the element in decimal, matching the teacher's
// group.Element.String convention.
func (e *Element) String() string { return e.v.String() }

type elementJSON struct {
	V string `json:"v"`
}

// MarshalJSON renders the element as a decimal-string-wrapped JSON object,
// matching the canonical-serialization intent of spec section 6 (stable
// key ordering, unambiguous numeric round trip for values that can exceed
// float64 precision).
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{V: e.v.String()})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Element) UnmarshalJSON(b []byte) error {
	var tmp elementJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(tmp.V, 10)
	if !ok {
		return errors.New("field: invalid element encoding")
	}
	e.v = v
	return nil
}

// MarshalCBOR renders the element as its plain big-endian byte string,
// the CBOR-encoded persisted-record format spec section 6 names
// alongside JSON.
func (e *Element) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(e.v.Bytes())
}

// UnmarshalCBOR is the inverse of MarshalCBOR.
func (e *Element) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	e.v = new(big.Int).SetBytes(b)
	return nil
}
