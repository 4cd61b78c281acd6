// Package hashchain implements the keyed hash H and the encoding helpers
// that the parameter/election hash chain (H_P, H_B, H_E, H_DI) is built
// from; the chain itself is computed in packages hashes and
// extendedbasehash.
//
// Grounded on the teacher's direct crypto/sha256 use for Fiat-Shamir
// challenges (voteproof/voteproof.go's getFSChallenge), generalized to the
// keyed HMAC-SHA-256 construction spec section 4.2 prescribes, and on the
// hash module naming of the original Rust source (eg_h, eg_h_q_as_field_element).
package hashchain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"

	"github.com/egguard/core/field"
)

// Value is a 256-bit hash output.
type Value [32]byte

// H computes HMAC-SHA-256(key, data), the keyed hash used for every
// challenge and derived-nonce computation in the protocol.
func H(key Value, data []byte) Value {
	mac := hmac.New(sha256.New, key[:])
	mac.Write(data)
	var out Value
	copy(out[:], mac.Sum(nil))
	return out
}

// HBytes is H with a plain byte-string key, used only to seed H_P from the
// fixed parameters (which precede any Value-typed key).
func HBytes(key []byte, data []byte) Value {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	var out Value
	copy(out[:], mac.Sum(nil))
	return out
}

// HQAsFieldElement computes H(key, data) and reduces the 256-bit output
// modulo q, producing a uniformly-enough distributed field element for use
// as a Fiat-Shamir challenge or derived nonce.
func HQAsFieldElement(key Value, data []byte, f *field.Field) *field.Element {
	h := H(key, data)
	return f.FromBytes(h[:])
}

// BigEndianU32 encodes x as 4 big-endian bytes, the fixed width the spec
// uses for guardian/contest/option indices in hashed material.
func BigEndianU32(x uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	return b[:]
}

// LengthPrefixedString encodes s as a 4-byte big-endian length followed by
// its UTF-8 bytes, per the canonical string encoding of spec section 6.
func LengthPrefixedString(s string) []byte {
	b := make([]byte, 4+len(s))
	binary.BigEndian.PutUint32(b[:4], uint32(len(s)))
	copy(b[4:], s)
	return b
}
