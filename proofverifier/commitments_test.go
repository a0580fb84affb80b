package proofverifier

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestCommitmentDigestDependsOnBlinder(t *testing.T) {
	data := patternBytes(64)
	b1 := bytes.Repeat([]byte{1}, BlinderSize)
	b2 := bytes.Repeat([]byte{2}, BlinderSize)

	for _, version := range []string{VersionV1, VersionV2} {
		d1 := computeCommitmentDigest(version, b1, data)
		d2 := computeCommitmentDigest(version, b2, data)
		if len(d1) != DigestSize {
			t.Fatalf("%s: digest size %d", version, len(d1))
		}
		if bytes.Equal(d1, d2) {
			t.Errorf("%s: digest ignores blinder", version)
		}
		if !bytes.Equal(d1, computeCommitmentDigest(version, b1, data)) {
			t.Errorf("%s: digest not deterministic", version)
		}
	}
}

func TestMerkleRootProperties(t *testing.T) {
	leaves := [][]byte{
		computeCommitmentDigest(VersionV2, nil, []byte("one")),
		computeCommitmentDigest(VersionV2, nil, []byte("two")),
		computeCommitmentDigest(VersionV2, nil, []byte("three")),
	}

	if !bytes.Equal(merkleRoot(leaves[:1]), leaves[0]) {
		t.Error("single leaf should be its own root")
	}
	if bytes.Equal(merkleRoot(leaves[:2]), merkleRoot(leaves)) {
		t.Error("root over a leaf prefix must differ from the full root")
	}

	reordered := [][]byte{leaves[1], leaves[0], leaves[2]}
	if bytes.Equal(merkleRoot(leaves), merkleRoot(reordered)) {
		t.Error("root must depend on leaf order")
	}
}

func TestVerifyCommitmentsTiling(t *testing.T) {
	// One disclosure spanning two adjacent commitments exactly.
	for _, version := range []string{VersionV1, VersionV2} {
		p := newTestProof(t, version)
		p.sent = patternBytes(100)
		p.commitSpan(DirectionSent, 0, 50)
		p.commitSpan(DirectionSent, 50, 50)
		p.discloseSpan(DirectionSent, 0, 100)
		raw, _ := p.buildP256()

		a, err := Decode(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", version, err)
		}
		if err := VerifyCommitments(a); err != nil {
			t.Errorf("%s: %v", version, err)
		}
	}
}

func TestVerifyCommitmentsContainment(t *testing.T) {
	// A blanket commitment over the whole direction, opened for a
	// narrower disclosed range.
	p := newTestProof(t, VersionV1)
	p.sent = patternBytes(100)
	p.commitSpanFor(DirectionSent, 0, 100, 20, 30)
	p.discloseSpan(DirectionSent, 20, 30)
	raw, _ := p.buildP256()

	a, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := VerifyCommitments(a); err != nil {
		t.Fatalf("containment case should verify: %v", err)
	}
}

func TestVerifyCommitmentsRejectsNonAlignment(t *testing.T) {
	// Disclosed range straddles the boundary between two commitments
	// without tiling either. Must be rejected even though its bytes are
	// genuine transcript bytes.
	p := newTestProof(t, VersionV1)
	p.sent = patternBytes(100)
	p.commitSpan(DirectionSent, 0, 50)
	p.commitSpan(DirectionSent, 50, 50)
	p.discloseSpan(DirectionSent, 40, 20)
	raw, _ := p.buildP256()

	a, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mustKind(t, VerifyCommitments(a), KindCommitmentMismatch)
}

func TestVerifyCommitmentsRejectsUncommittedRegion(t *testing.T) {
	// Disclosure over a region with no commitment at all.
	p := newTestProof(t, VersionV1)
	p.sent = patternBytes(100)
	p.commitSpan(DirectionSent, 0, 40)
	p.discloseSpan(DirectionSent, 60, 20)
	raw, _ := p.buildP256()

	a, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mustKind(t, VerifyCommitments(a), KindCommitmentMismatch)
}

func TestVerifyCommitmentsRejectsMutatedByte(t *testing.T) {
	for _, version := range []string{VersionV1, VersionV2} {
		p := newTestProof(t, version)
		p.sent = patternBytes(100)
		p.commitSpan(DirectionSent, 0, 100)
		p.discloseSpan(DirectionSent, 0, 100)
		raw, _ := p.buildP256()

		a, err := Decode(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", version, err)
		}
		a.Disclosed[0].Data[57] ^= 0x01
		mustKind(t, VerifyCommitments(a), KindCommitmentMismatch)
	}
}

func TestVerifyCommitmentsRejectsRootMismatch(t *testing.T) {
	// Tamper with the digest of a commitment nothing discloses: every
	// per-range check still passes, only the root binds it.
	p := newTestProof(t, VersionV1)
	p.sent = patternBytes(100)
	p.recv = patternBytes(50)
	p.commitSpan(DirectionSent, 0, 100)
	p.commitSpan(DirectionRecv, 0, 50)
	p.discloseSpan(DirectionSent, 0, 100)
	raw, _ := p.buildP256()

	m := decodeArtifactJSON(t, raw)
	commitments := m["commitments"].([]interface{})
	tampered := make([]byte, DigestSize)
	commitments[1].(map[string]interface{})["digest"] = base64.StdEncoding.EncodeToString(tampered)

	a, err := Decode(marshalArtifactJSON(t, m))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mustKind(t, VerifyCommitments(a), KindCommitmentMismatch)
}
