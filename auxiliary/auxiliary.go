// Package auxiliary implements each guardian's communication key pair and
// the ECIES-style scheme used to encrypt one guardian's Shamir
// polynomial-evaluation share for another guardian during the key
// ceremony, so shares can travel over an untrusted channel between
// guardians who have no other shared secret.
//
// Adapted from the teacher's group/p256.go (cloudflare/circl/group P-256
// wrapper, kept here since nothing else in this module needed a second
// elliptic curve once this single auxiliary-encryption use was wired in);
// the ECIES construction itself follows original_source's guardian
// "communication key" (kappa_i, zeta_i) concept, which original_source
// alludes to but does not fully specify in the retrieved files — resolved
// here as standard ECIES (ephemeral ECDH + HKDF-derived AEAD key), see
// DESIGN.md.
package auxiliary

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"io"

	circl "github.com/cloudflare/circl/group"
	"golang.org/x/crypto/hkdf"

	"github.com/egguard/core/egerrors"
)

// curve is the single elliptic curve this package uses for guardian
// communication keys. P-256 is a pragmatic, broadly-supported choice
// distinct from the large safe-prime group the election arithmetic itself
// runs in.
var curve = circl.P256

// KeyPair is one guardian's auxiliary communication key: a secret scalar
// and its public point, independent of the guardian's Z_q/Z_p* election
// key material in package guardian.
type KeyPair struct {
	secret circl.Scalar
	Public circl.Element
}

// GenerateKeyPair draws a fresh communication key pair.
func GenerateKeyPair(rnd io.Reader) (*KeyPair, error) {
	s := curve.RandomNonZeroScalar(rnd)
	pub := curve.NewElement().MulGen(s)
	return &KeyPair{secret: s, Public: pub}, nil
}

// PublicBytes encodes the public point for transmission/storage.
func (kp *KeyPair) PublicBytes() ([]byte, error) {
	return kp.Public.MarshalBinary()
}

// PublicFromBytes decodes a guardian's published communication public key.
func PublicFromBytes(b []byte) (circl.Element, error) {
	e := curve.NewElement()
	if err := e.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return e, nil
}

// Sealed is a ciphertext produced by Seal: an ephemeral public key plus
// an AES-256-GCM payload under a key derived from the ECDH shared point.
type Sealed struct {
	Ephemeral []byte
	Nonce     []byte
	Payload   []byte
}

const infoLabel = "egguard-auxiliary-v1"

func deriveKey(shared circl.Element) ([]byte, error) {
	sharedBytes, err := shared.MarshalBinary()
	if err != nil {
		return nil, err
	}
	h := hkdf.New(sha256.New, sharedBytes, nil, []byte(infoLabel))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal encrypts plaintext (a guardian's polynomial-evaluation share, or
// any other small secret payload) to the holder of recipientPub, using an
// ephemeral ECDH key exchange plus AES-256-GCM.
func Seal(rnd io.Reader, recipientPub circl.Element, plaintext []byte) (*Sealed, error) {
	ephSecret := curve.RandomNonZeroScalar(rnd)
	ephPub := curve.NewElement().MulGen(ephSecret)

	shared := curve.NewElement().Mul(recipientPub, ephSecret)
	key, err := deriveKey(shared)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rnd, nonce); err != nil {
		return nil, err
	}

	ephBytes, err := ephPub.MarshalBinary()
	if err != nil {
		return nil, err
	}

	payload := aead.Seal(nil, nonce, plaintext, ephBytes)

	return &Sealed{Ephemeral: ephBytes, Nonce: nonce, Payload: payload}, nil
}

// Open decrypts a Sealed payload using the recipient's secret key,
// reconstructing the shared ECDH point from the ephemeral public key
// carried in the ciphertext.
func (kp *KeyPair) Open(s *Sealed) ([]byte, error) {
	ephPub := curve.NewElement()
	if err := ephPub.UnmarshalBinary(s.Ephemeral); err != nil {
		return nil, err
	}

	shared := curve.NewElement().Mul(ephPub, kp.secret)
	key, err := deriveKey(shared)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, errors.New("auxiliary: bad nonce length")
	}

	plaintext, err := aead.Open(nil, s.Nonce, s.Payload, s.Ephemeral)
	if err != nil {
		return nil, &egerrors.ProofDoesNotVerify{What: "auxiliary share decryption authentication"}
	}
	return plaintext, nil
}
