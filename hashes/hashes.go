// Package hashes computes the first two links of the parameter/election
// hash chain spec section 4.2 describes: the parameter base hash H_P
// (binds the fixed algebraic parameters) and the election base hash H_B
// (binds H_P to the varying parameters and the election manifest). The
// remaining links, H_E and H_DI, live in package extendedbasehash since
// they additionally depend on the guardian public keys produced by the
// key ceremony (package guardian), which this package does not import.
//
// Grounded on spec section 4.2's hash-chain description and on the
// module naming original_source/src/eg/src/lib.rs documents
// (Hashes::h_p, Hashes::h_b), reworked as plain functions over this
// module's params.Fixed/params.Varying/manifest.Manifest rather than a
// struct bundling both hashes together.
package hashes

import (
	"github.com/egguard/core/hashchain"
	"github.com/egguard/core/manifest"
	"github.com/egguard/core/params"
)

// tagParameterHash and tagBaseHash are the domain-separation tag bytes
// prefixed to the hashed material at each link of the chain, per spec
// section 4.2's "domain separation is achieved via a leading tag byte"
// rule.
const (
	tagParameterHash byte = 0x00
	tagBaseHash      byte = 0x01
)

// zeroKey is H_0, the all-zero base key the first hash in the chain is
// keyed with. There is nothing upstream of the fixed parameters to
// derive a key from.
var zeroKey hashchain.Value

// ParameterHash computes H_P = H(H_0, 0x00 || fixed-parameters), binding
// every downstream hash to this specific (p, q, g) triple and its
// structural metadata.
func ParameterHash(fx *params.Fixed) hashchain.Value {
	material := append([]byte{tagParameterHash}, fx.CanonicalBytes()...)
	return hashchain.HBytes(zeroKey[:], material)
}

// BaseHash computes H_B = H(H_P, 0x01 || varying-parameters || manifest),
// binding the guardian count, threshold, chaining mode, and the full
// election manifest to the parameter hash. Any change to the manifest or
// the varying parameters changes H_B, and therefore every hash derived
// from it.
func BaseHash(hP hashchain.Value, vary *params.Varying, m *manifest.Manifest) hashchain.Value {
	material := []byte{tagBaseHash}
	material = append(material, vary.CanonicalBytes()...)
	material = append(material, m.CanonicalBytes()...)
	return hashchain.H(hP, material)
}
