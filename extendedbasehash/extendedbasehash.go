// Package extendedbasehash computes the last two links of the
// parameter/election hash chain spec section 4.2 describes: the
// extended base hash H_E, which binds the election base hash H_B to
// every guardian's public key produced during the threshold ceremony
// (package guardian), and the voting-device hash H_DI derived from H_E
// and a device information string.
//
// H_E is kept in its own package, separate from package hashes, because
// it depends on package guardian for the public-key type; this keeps
// package hashes free of any dependency on guardian.
//
// Grounded on spec section 4.2 and on the module naming
// original_source/src/eg/src/lib.rs documents (extended_base_hash,
// voting_device); the H_DI length-prefix resolution is documented in
// SPEC_FULL.md section 5 (spec section 9's open question).
package extendedbasehash

import (
	"sort"

	"github.com/egguard/core/egerrors"
	"github.com/egguard/core/field"
	"github.com/egguard/core/group"
	"github.com/egguard/core/guardian"
	"github.com/egguard/core/hashchain"
)

const (
	tagExtendedBaseHash byte = 0x02
	tagDeviceHash       byte = 0x2A
)

// Compute derives H_E = H(H_B, 0x02 || guardian public keys in index
// order). pubs must contain exactly one entry per guardian index 1..n
// with no duplicates or gaps, the same completeness rule package
// jointkey enforces for key combination, since an incomplete or
// duplicated key set would make H_E ambiguous.
func Compute(gr *group.Group, f *field.Field, hB hashchain.Value, n int, pubs []*guardian.PublicKey) (hashchain.Value, error) {
	ordered, err := orderByIndex(n, pubs)
	if err != nil {
		return hashchain.Value{}, err
	}

	material := []byte{tagExtendedBaseHash}
	for _, pk := range ordered {
		if len(pk.Proof.Responses) != len(pk.Commitments)+1 {
			return hashchain.Value{}, &egerrors.LengthMismatch{
				What:   "guardian commitments/proof responses",
				Wanted: len(pk.Commitments) + 1,
				Got:    len(pk.Proof.Responses),
			}
		}
		material = append(material, encodePublicKey(gr, f, pk)...)
	}
	return hashchain.H(hB, material), nil
}

func orderByIndex(n int, pubs []*guardian.PublicKey) ([]*guardian.PublicKey, error) {
	byIdx := make(map[int]*guardian.PublicKey, len(pubs))
	for _, pk := range pubs {
		idx := pk.GuardianIndex.Int()
		if byIdx[idx] != nil {
			return nil, &egerrors.GuardianMultiple{Index: idx}
		}
		byIdx[idx] = pk
	}

	var missing []int
	ordered := make([]*guardian.PublicKey, 0, n)
	for i := 1; i <= n; i++ {
		pk, ok := byIdx[i]
		if !ok {
			missing = append(missing, i)
			continue
		}
		ordered = append(ordered, pk)
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &egerrors.GuardiansMissing{Indices: missing}
	}
	return ordered, nil
}

func encodePublicKey(gr *group.Group, f *field.Field, pk *guardian.PublicKey) []byte {
	idxBytes := pk.GuardianIndex.BigEndian4Bytes()
	buf := append([]byte{}, idxBytes[:]...)
	buf = append(buf, hashchain.BigEndianU32(uint32(len(pk.Commitments)))...)
	for _, K := range pk.Commitments {
		buf = append(buf, gr.ToBytesLeftPad(K)...)
	}
	buf = append(buf, gr.ToBytesLeftPad(pk.CommsPublic)...)
	buf = append(buf, f.ToBytesLeftPad(pk.Proof.Challenge)...)
	for _, v := range pk.Proof.Responses {
		buf = append(buf, f.ToBytesLeftPad(v)...)
	}
	return buf
}

// DeviceHash derives H_DI = H(H_E, 0x2A || len(S_device) || S_device),
// binding a specific voting device/session's descriptive information to
// the election. The 4-byte big-endian length prefix is included inside
// the hashed material (spec section 9's resolved open question), per
// the general length-prefixed-string canonical encoding of spec section
// 6.
func DeviceHash(hE hashchain.Value, deviceInfo string) hashchain.Value {
	material := append([]byte{tagDeviceHash}, hashchain.LengthPrefixedString(deviceInfo)...)
	return hashchain.H(hE, material)
}
