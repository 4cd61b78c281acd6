// Package egerrors collects the flat tagged-union error kinds of spec
// section 7: structural mismatches, proof failures, key-ceremony
// failures, algebraic failures, validation failures, and dependency
// failures. Grounded on original_source/src/eg/src/errors.rs's EgError
// enum (read in full); translated from a Rust enum-of-variants into
// exported Go error struct types, each implementing error, following the
// teacher/pack convention of small parameterized error structs rather
// than a monolithic switch (cf. other_examples' ErrInvalidThreshold-style
// sentinel errors, generalized here to carry fields).
package egerrors

import (
	"fmt"
)

// IndexOutOfRange reports a positional index beyond its collection.
type IndexOutOfRange struct {
	Kind  string
	Index int
	Bound int
}

func (e *IndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index %d out of range (bound %d)", e.Kind, e.Index, e.Bound)
}

// LengthMismatch reports two parallel vectors of differing length.
type LengthMismatch struct {
	What   string
	Wanted int
	Got    int
}

func (e *LengthMismatch) Error() string {
	return fmt.Sprintf("%s: wanted length %d, got %d", e.What, e.Wanted, e.Got)
}

// ContestNotInBallotStyle reports a contest referenced by a ballot that its
// ballot style does not include.
type ContestNotInBallotStyle struct {
	ContestIndex    int
	BallotStyleName string
}

func (e *ContestNotInBallotStyle) Error() string {
	return fmt.Sprintf("contest %d is not part of ballot style %q", e.ContestIndex, e.BallotStyleName)
}

// OptionIndexBeyondContest reports an option index beyond a contest's
// declared data-field count.
type OptionIndexBeyondContest struct {
	ContestIndex int
	OptionIndex  int
	NumFields    int
}

func (e *OptionIndexBeyondContest) Error() string {
	return fmt.Sprintf("contest %d option %d beyond its %d data fields", e.ContestIndex, e.OptionIndex, e.NumFields)
}

// ProofNotPresent reports a missing range or selection-limit proof during
// ballot-ciphertext verification.
type ProofNotPresent struct {
	ContestIndex int
	OptionIndex  int
}

func (e *ProofNotPresent) Error() string {
	return fmt.Sprintf("no proof present for contest %d option %d", e.ContestIndex, e.OptionIndex)
}

// ProofDoesNotVerify reports a cryptographic proof that failed its
// verification equation.
type ProofDoesNotVerify struct {
	What string
}

func (e *ProofDoesNotVerify) Error() string { return fmt.Sprintf("%s does not verify", e.What) }

// WrongNumberOfCiphertextProofs reports a proof-count/ciphertext-count
// mismatch within a contest.
type WrongNumberOfCiphertextProofs struct {
	ContestIndex int
	NumProofs    int
	NumOptions   int
}

func (e *WrongNumberOfCiphertextProofs) Error() string {
	return fmt.Sprintf("contest %d has %d range proofs but %d selectable options", e.ContestIndex, e.NumProofs, e.NumOptions)
}

// ContestSelectionLimit reports a contest whose selection-limit proof
// failed, or whose plaintext total exceeds the declared limit.
type ContestSelectionLimit struct {
	ContestIndex int
	Limit        uint64
}

func (e *ContestSelectionLimit) Error() string {
	return fmt.Sprintf("contest %d selection total exceeds limit %d", e.ContestIndex, e.Limit)
}

// OverflowInOptionFieldTotal reports a selection-limit nonce/plaintext sum
// that exceeds 2^64-1, per spec section 4.5.
type OverflowInOptionFieldTotal struct {
	ContestIndex int
}

func (e *OverflowInOptionFieldTotal) Error() string {
	return fmt.Sprintf("contest %d option field total overflows u64", e.ContestIndex)
}

// CommitmentNotInGroup reports a Sigma-protocol commitment failing group
// membership validation.
type CommitmentNotInGroup struct{ Proof string }

func (e *CommitmentNotInGroup) Error() string {
	return fmt.Sprintf("%s: commitment is not a valid group element", e.Proof)
}

// ResponseNotInField reports a Sigma-protocol response failing field
// membership validation.
type ResponseNotInField struct{ Proof string }

func (e *ResponseNotInField) Error() string {
	return fmt.Sprintf("%s: response is not a valid field element", e.Proof)
}

// ChallengeMismatch reports a recomputed Fiat-Shamir challenge that does
// not equal the one carried in the proof.
type ChallengeMismatch struct{ Proof string }

func (e *ChallengeMismatch) Error() string {
	return fmt.Sprintf("%s: recomputed challenge does not match", e.Proof)
}

// CommitInconsistency reports a guardian whose reconstructed commitment
// does not match the one it originally published during combined
// decryption-proof verification.
type CommitInconsistency struct{ GuardianIndex int }

func (e *CommitInconsistency) Error() string {
	return fmt.Sprintf("guardian %d commit message is inconsistent", e.GuardianIndex)
}

// GuardiansMissing reports indices in [1, n] absent from a guardian-key
// set supplied to joint-key computation.
type GuardiansMissing struct{ Indices []int }

func (e *GuardiansMissing) Error() string {
	return fmt.Sprintf("guardians missing from key set: %v", e.Indices)
}

// GuardianMultiple reports an index represented more than once.
type GuardianMultiple struct{ Index int }

func (e *GuardianMultiple) Error() string {
	return fmt.Sprintf("guardian %d represented more than once", e.Index)
}

// NoJointPublicKeyForPurpose reports a key purpose that does not form a
// joint public key (only Encrypt_Ballot purposes do).
type NoJointPublicKeyForPurpose struct{ Purpose string }

func (e *NoJointPublicKeyForPurpose) Error() string {
	return fmt.Sprintf("key purpose %q does not form a joint public key", e.Purpose)
}

// InvalidGroupElement reports a group element that fails the group
// membership predicate, or a joint key equal to the identity.
type InvalidGroupElement struct{ What string }

func (e *InvalidGroupElement) Error() string {
	return fmt.Sprintf("%s is not a valid, non-identity group element", e.What)
}

// NoInverse reports a failed modular inverse during plaintext recovery.
type NoInverse struct{ What string }

func (e *NoInverse) Error() string { return fmt.Sprintf("%s has no modular inverse", e.What) }

// NotEnoughShares reports a decryption-share or commit-share quorum
// smaller than the threshold k.
type NotEnoughShares struct {
	Desc string
	L, K int
}

func (e *NotEnoughShares) Error() string {
	return fmt.Sprintf("only %d %s shares given, but at least %d required", e.L, e.Desc, e.K)
}

// DuplicateGuardian reports a guardian index represented more than once
// among decryption or commit shares.
type DuplicateGuardian struct {
	Desc  string
	Index int
}

func (e *DuplicateGuardian) Error() string {
	return fmt.Sprintf("guardian %d represented more than once in %s shares", e.Index, e.Desc)
}

// IndexMismatch reports parallel per-guardian vectors (decryption shares,
// commit shares, response shares) that are not sorted identically.
type IndexMismatch struct{}

func (e *IndexMismatch) Error() string { return "parallel guardian-share lists are not sorted identically" }

// JointPKMismatch reports a supplied guardian-public-key set that does not
// reconstruct the claimed joint public key.
type JointPKMismatch struct{}

func (e *JointPKMismatch) Error() string {
	return "supplied guardian public keys do not produce the claimed joint public key"
}

// HashMismatch reports a ballot or artifact bound to an extended base
// hash that does not match the current election's H_E.
type HashMismatch struct{ What string }

func (e *HashMismatch) Error() string { return fmt.Sprintf("%s does not match current election H_E", e.What) }

// BadLabel reports a label failing the rules of spec section 6.
type BadLabel struct {
	Label  string
	Reason string
}

func (e *BadLabel) Error() string { return fmt.Sprintf("label %q invalid: %s", e.Label, e.Reason) }

// FixedParametersMismatch reports fixed parameters that are neither
// bitwise-equal to the standard parameters nor independently valid.
type FixedParametersMismatch struct{ Reason string }

func (e *FixedParametersMismatch) Error() string {
	return fmt.Sprintf("fixed parameters invalid: %s", e.Reason)
}

// DependencyFailed wraps a failure to produce a required derived object,
// preserving the original cause per spec section 7's "Dependency
// failures" propagation policy.
type DependencyFailed struct {
	Resource string
	Cause    error
}

func (e *DependencyFailed) Error() string {
	return fmt.Sprintf("could not produce %s: %v", e.Resource, e.Cause)
}

func (e *DependencyFailed) Unwrap() error { return e.Cause }

// RecursionDetected reports a derivation that re-entered the cache for the
// same (resource, format) key while already in progress, per spec
// section 9.
type RecursionDetected struct{ Key string }

func (e *RecursionDetected) Error() string {
	return fmt.Sprintf("recursive derivation detected for %s", e.Key)
}
