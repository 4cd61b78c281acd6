// Package csprng implements the deterministic, seedable pseudo-random
// number generator spec section 4.7 requires for nonce generation and test
// reproducibility: a SHAKE-256 extendable-output function seeded from a
// domain-separated label plus arbitrary seed material, with no internal
// buffering surprises across concurrent readers.
//
// Grounded on original_source's PRNG usage pattern (csprng seeded once per
// election, then forked per-purpose) and on the teacher's preference for
// golang.org/x/crypto primitives (the teacher imports x/crypto/curve25519
// alongside stdlib crypto; here we lean on the same module's sha3 XOF
// instead of stdlib math/rand, which is not a CSPRNG).
package csprng

import (
	"encoding/binary"
	"io"
	"math/big"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/egguard/core/field"
)

// Generator is a thread-safe SHAKE-256 XOF instance. Draws are
// serialized with a mutex since sha3.ShakeHash is not safe for concurrent
// reads.
type Generator struct {
	mu  sync.Mutex
	xof sha3.ShakeHash
}

// New seeds a generator from arbitrary domain-separated material: the
// caller is expected to pass a label (e.g. "ballot-nonce", "guardian-1")
// concatenated with election- or context-specific bytes, so that two
// generators seeded for different purposes never produce the same stream
// even if the rest of the seed material collides.
func New(label string, seed ...[]byte) *Generator {
	xof := sha3.NewShake256()
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(label)))
	xof.Write(lenBuf[:])
	xof.Write([]byte(label))
	for _, s := range seed {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
		xof.Write(lenBuf[:])
		xof.Write(s)
	}
	return &Generator{xof: xof}
}

// Read draws len(p) bytes from the XOF stream into p, implementing
// io.Reader.
func (g *Generator) Read(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.xof.Read(p)
}

var _ io.Reader = (*Generator)(nil)

// FieldElement draws a uniformly-enough distributed element of f by
// rejection sampling against f's byte length, avoiding the modulo bias a
// plain reduce-and-wrap would introduce.
func (g *Generator) FieldElement(f *field.Field) *field.Element {
	q := f.Order()
	byteLen := (q.BitLen() + 7) / 8
	buf := make([]byte, byteLen)
	for {
		if _, err := g.Read(buf); err != nil {
			panic(err) // a XOF read never fails
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(q) < 0 {
			return f.FromBigInt(v)
		}
	}
}

// Bytes draws n raw bytes, for uses that need XOF output directly (e.g.
// auxiliary-encryption symmetric key material).
func (g *Generator) Bytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := g.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// Insecure seeds a generator from a fixed, non-secret label for
// reproducible test fixtures, per spec section 4.7's "insecure
// deterministic mode" testability requirement. It must never be used
// outside tests.
func Insecure(testLabel string) *Generator {
	return New("INSECURE-TEST-SEED:" + testLabel)
}
