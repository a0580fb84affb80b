package proofverifier

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"tlsn-verify/shared"
)

const testKeyID = "default"

// testProof builds signed artifacts in-memory so tests can exercise the
// pipeline without fixture files. Spans are described against a full
// per-direction transcript; digests, root, header, and signature are
// derived the same way a notary would derive them.
type testProof struct {
	t         *testing.T
	version   string
	sessionID string
	time      uint64
	sent      []byte
	recv      []byte

	commitments []Commitment
	disclosed   []DisclosedRange
}

func newTestProof(t *testing.T, version string) *testProof {
	t.Helper()
	return &testProof{
		t:         t,
		version:   version,
		sessionID: uuid.NewString(),
		time:      1700000000,
	}
}

func (p *testProof) transcript(direction string) []byte {
	if direction == DirectionSent {
		return p.sent
	}
	return p.recv
}

// commitSpan records a commitment over [start, start+length) of the
// direction's transcript, with a deterministic blinder.
func (p *testProof) commitSpan(direction string, start, length uint64) {
	p.t.Helper()
	data := p.transcript(direction)[start : start+length]
	blinder := make([]byte, BlinderSize)
	for i := range blinder {
		blinder[i] = byte(len(p.commitments) + 1)
	}
	p.commitments = append(p.commitments, Commitment{
		Direction: direction,
		Start:     start,
		Length:    length,
		Digest:    computeCommitmentDigest(p.version, blinder, data),
		Blinder:   blinder,
	})
}

// commitSpanFor records a commitment over [start, start+length) whose
// digest opens a narrower disclosure [openStart, openStart+openLength):
// the blanket-commitment opening form.
func (p *testProof) commitSpanFor(direction string, start, length, openStart, openLength uint64) {
	p.t.Helper()
	data := p.transcript(direction)[openStart : openStart+openLength]
	blinder := make([]byte, BlinderSize)
	for i := range blinder {
		blinder[i] = byte(len(p.commitments) + 1)
	}
	p.commitments = append(p.commitments, Commitment{
		Direction: direction,
		Start:     start,
		Length:    length,
		Digest:    computeCommitmentDigest(p.version, blinder, data),
		Blinder:   blinder,
	})
}

func (p *testProof) discloseSpan(direction string, start, length uint64) {
	p.t.Helper()
	data := make([]byte, length)
	copy(data, p.transcript(direction)[start:start+length])
	p.disclosed = append(p.disclosed, DisclosedRange{
		Direction: direction,
		Start:     start,
		Length:    length,
		Data:      data,
	})
}

func (p *testProof) header() *SessionHeader {
	digests := make([][]byte, len(p.commitments))
	for i := range p.commitments {
		digests[i] = p.commitments[i].Digest
	}
	return &SessionHeader{
		Version:    p.version,
		SessionID:  p.sessionID,
		Time:       p.time,
		SentLen:    uint64(len(p.sent)),
		RecvLen:    uint64(len(p.recv)),
		RootDigest: computeRootDigest(p.version, digests),
	}
}

func (p *testProof) artifact(scheme string, sig, signedHeader []byte) *ProofArtifact {
	if p.disclosed == nil {
		// Fully-redacted proofs are valid; the wire format still wants
		// an empty array rather than null.
		p.disclosed = []DisclosedRange{}
	}
	return &ProofArtifact{
		Version:      p.version,
		NotaryKeyID:  testKeyID,
		Signature:    NotarySignature{Scheme: scheme, Sig: sig},
		SignedHeader: signedHeader,
		Commitments:  p.commitments,
		Disclosed:    p.disclosed,
	}
}

// buildP256 signs the proof with a fresh P-256 key and returns the raw
// artifact JSON plus a key store holding the matching public key.
func (p *testProof) buildP256() ([]byte, *shared.KeyStore) {
	p.t.Helper()

	signedHeader, err := EncodeSessionHeader(p.header())
	if err != nil {
		p.t.Fatalf("encode header: %v", err)
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		p.t.Fatalf("generate P-256 key: %v", err)
	}
	hash := sha256.Sum256(signedHeader)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, hash[:])
	if err != nil {
		p.t.Fatalf("sign header: %v", err)
	}

	keys := shared.NewKeyStore()
	if err := keys.AddECDSAPublicKey(testKeyID, &priv.PublicKey); err != nil {
		p.t.Fatalf("add key: %v", err)
	}
	return p.marshal(p.artifact(shared.SignatureSchemeECDSAP256, sig, signedHeader)), keys
}

// buildEth signs the proof with a fresh secp256k1 key and returns the
// raw artifact JSON plus a key store holding the notary address.
func (p *testProof) buildEth() ([]byte, *shared.KeyStore) {
	p.t.Helper()

	signedHeader, err := EncodeSessionHeader(p.header())
	if err != nil {
		p.t.Fatalf("encode header: %v", err)
	}

	kp, err := shared.GenerateSigningKeyPair()
	if err != nil {
		p.t.Fatalf("generate secp256k1 key: %v", err)
	}
	sig, err := kp.SignData(signedHeader)
	if err != nil {
		p.t.Fatalf("sign header: %v", err)
	}

	keys := shared.NewKeyStore()
	if err := keys.AddEthAddress(testKeyID, kp.EthAddress().Hex()); err != nil {
		p.t.Fatalf("add key: %v", err)
	}
	return p.marshal(p.artifact(shared.SignatureSchemeEthSecp256k1, sig, signedHeader)), keys
}

func (p *testProof) marshal(a *ProofArtifact) []byte {
	p.t.Helper()
	raw, err := json.Marshal(a)
	if err != nil {
		p.t.Fatalf("marshal artifact: %v", err)
	}
	return raw
}

// patternBytes returns n bytes of a deterministic pattern.
func patternBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return b
}

// mustKind fails the test unless err is a ProofError of the given kind.
func mustKind(t *testing.T, err error, kind ProofErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got success", kind)
	}
	if !IsKind(err, kind) {
		t.Fatalf("expected %s error, got: %v", kind, err)
	}
}

// decodeArtifactJSON unmarshals raw artifact JSON for mutation in tests.
func decodeArtifactJSON(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal artifact json: %v", err)
	}
	return m
}

func marshalArtifactJSON(t *testing.T, m map[string]interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal artifact json: %v", err)
	}
	return raw
}
