package proofverifier

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/google/uuid"

	"tlsn-verify/shared"
)

const ethSignatureSize = 65

// Decode turns a raw artifact buffer into a structured ProofArtifact.
// This is the primary attack surface: the buffer is attacker-controlled,
// so every failure mode is a handled KindMalformed error and no input may
// cause a panic or out-of-bounds read. No cryptography happens here.
func Decode(raw []byte) (*ProofArtifact, error) {
	if len(raw) == 0 {
		return nil, malformedf("empty input")
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var a ProofArtifact
	if err := dec.Decode(&a); err != nil {
		return nil, malformedErr("artifact decode failed", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformedf("trailing data after artifact")
	}

	if err := validateArtifact(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func validateArtifact(a *ProofArtifact) error {
	if !validVersion(a.Version) {
		return malformedf("unsupported version tag %q", a.Version)
	}

	switch a.Signature.Scheme {
	case shared.SignatureSchemeECDSAP256:
		if len(a.Signature.Sig) == 0 {
			return malformedf("empty %s signature", a.Signature.Scheme)
		}
	case shared.SignatureSchemeEthSecp256k1:
		if len(a.Signature.Sig) != ethSignatureSize {
			return malformedf("%s signature must be %d bytes, got %d",
				a.Signature.Scheme, ethSignatureSize, len(a.Signature.Sig))
		}
	default:
		return malformedf("unsupported signature scheme %q", a.Signature.Scheme)
	}

	header, err := parseSignedHeader(a.SignedHeader)
	if err != nil {
		return malformedErr("bad signed header", err)
	}
	if header.Version != a.Version {
		return malformedf("signed header version %q does not match artifact version %q",
			header.Version, a.Version)
	}
	if _, err := uuid.Parse(header.SessionID); err != nil {
		return malformedErr("session id is not a valid uuid", err)
	}
	a.Header = header

	if err := validateCommitments(a); err != nil {
		return err
	}
	return validateDisclosed(a)
}

func validateCommitments(a *ProofArtifact) error {
	for i := range a.Commitments {
		c := &a.Commitments[i]
		if !validDirection(c.Direction) {
			return malformedf("commitment %d: unknown direction %q", i, c.Direction)
		}
		if c.Length == 0 {
			return malformedf("commitment %d: zero length", i)
		}
		if len(c.Digest) != DigestSize {
			return malformedf("commitment %d: digest must be %d bytes, got %d", i, DigestSize, len(c.Digest))
		}
		switch a.Version {
		case VersionV1:
			// The blinder is the HMAC key; without it the commitment
			// cannot be recomputed.
			if len(c.Blinder) != BlinderSize {
				return malformedf("commitment %d: %s requires a %d-byte blinder, got %d",
					i, VersionV1, BlinderSize, len(c.Blinder))
			}
		case VersionV2:
			if len(c.Blinder) != 0 && len(c.Blinder) != BlinderSize {
				return malformedf("commitment %d: blinder must be absent or %d bytes, got %d",
					i, BlinderSize, len(c.Blinder))
			}
		}
		if c.Start > math.MaxUint64-c.Length {
			return malformedf("commitment %d: range overflows", i)
		}
		if c.End() > a.Header.Total(c.Direction) {
			return malformedf("commitment %d: range [%d, %d) exceeds %s total %d",
				i, c.Start, c.End(), c.Direction, a.Header.Total(c.Direction))
		}
	}

	// Commitments for the same direction must not overlap. Sort a copy
	// by (direction, start); the artifact keeps its original order since
	// the root digest is computed over it.
	sorted := make([]*Commitment, len(a.Commitments))
	for i := range a.Commitments {
		sorted[i] = &a.Commitments[i]
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Direction != sorted[j].Direction {
			return sorted[i].Direction < sorted[j].Direction
		}
		return sorted[i].Start < sorted[j].Start
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Direction == cur.Direction && cur.Start < prev.End() {
			return malformedf("commitments overlap in direction %s at offset %d", cur.Direction, cur.Start)
		}
	}
	return nil
}

func validateDisclosed(a *ProofArtifact) error {
	for i := range a.Disclosed {
		d := &a.Disclosed[i]
		if !validDirection(d.Direction) {
			return malformedf("disclosed range %d: unknown direction %q", i, d.Direction)
		}
		if d.Length == 0 {
			return malformedf("disclosed range %d: zero length", i)
		}
		if uint64(len(d.Data)) != d.Length {
			return malformedf("disclosed range %d: declared length %d but %d data bytes",
				i, d.Length, len(d.Data))
		}
		if d.Start > math.MaxUint64-d.Length {
			return malformedf("disclosed range %d: range overflows", i)
		}
		// Bounds against the declared totals are the reconciler's
		// concern (KindRangeConflict), not a decode failure.
	}
	return nil
}
