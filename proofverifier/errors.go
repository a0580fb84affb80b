package proofverifier

import (
	"errors"
	"fmt"
)

// ProofErrorKind classifies verification failures. Every rejection of an
// artifact maps to exactly one kind; all kinds are terminal and
// non-retryable.
type ProofErrorKind int

const (
	// KindMalformed covers decoding failures: truncated buffers, schema
	// violations, unsupported version tags.
	KindMalformed ProofErrorKind = iota
	// KindCommitmentMismatch covers recomputed digests that do not match
	// the committed values, including the header root digest.
	KindCommitmentMismatch
	// KindBadSignature covers an invalid or unverifiable notary signature.
	KindBadSignature
	// KindRangeConflict covers disclosed/redacted ranges that overlap,
	// leave gaps, or exceed the declared transcript length.
	KindRangeConflict
)

func (k ProofErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindCommitmentMismatch:
		return "commitment_mismatch"
	case KindBadSignature:
		return "bad_signature"
	case KindRangeConflict:
		return "range_conflict"
	default:
		return "unknown"
	}
}

// ProofError is the only error type the verification pipeline returns.
// It carries the failure kind, a human-readable reason for display, and
// the underlying cause if any.
type ProofError struct {
	Kind   ProofErrorKind
	Reason string
	Err    error
}

func (e *ProofError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *ProofError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ProofError of the given kind.
func IsKind(err error, kind ProofErrorKind) bool {
	var pe *ProofError
	return errors.As(err, &pe) && pe.Kind == kind
}

func malformedf(format string, args ...interface{}) error {
	return &ProofError{Kind: KindMalformed, Reason: fmt.Sprintf(format, args...)}
}

func malformedErr(reason string, err error) error {
	return &ProofError{Kind: KindMalformed, Reason: reason, Err: err}
}

func commitmentMismatchf(format string, args ...interface{}) error {
	return &ProofError{Kind: KindCommitmentMismatch, Reason: fmt.Sprintf(format, args...)}
}

func badSignaturef(format string, args ...interface{}) error {
	return &ProofError{Kind: KindBadSignature, Reason: fmt.Sprintf(format, args...)}
}

func badSignatureErr(reason string, err error) error {
	return &ProofError{Kind: KindBadSignature, Reason: reason, Err: err}
}

func rangeConflictf(format string, args ...interface{}) error {
	return &ProofError{Kind: KindRangeConflict, Reason: fmt.Sprintf(format, args...)}
}
