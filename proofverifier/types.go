package proofverifier

// Supported artifact version tags. Each tag fixes the commitment digest
// construction; unknown tags are rejected at decode time rather than
// falling back to a default.
const (
	// VersionV1 uses HMAC-SHA256 commitments (key = per-range blinder)
	// and a sequential SHA-256 root over the commitment digests.
	VersionV1 = "tlsnp/1"
	// VersionV2 uses keyed BLAKE3 commitments with domain separation and
	// a BLAKE3 Merkle root over the commitment digests.
	VersionV2 = "tlsnp/2"
)

// Transcript direction tags as they appear on the wire.
const (
	DirectionSent = "sent"
	DirectionRecv = "recv"
)

const (
	// DigestSize is the size of every commitment digest and of the root
	// digest, for both versions.
	DigestSize = 32
	// BlinderSize is the size of a per-range blinder. Required for
	// tlsnp/1 (it is the HMAC key), optional for tlsnp/2.
	BlinderSize = 32
)

// SessionHeader is the fixed metadata the notary signed. It is decoded
// from the artifact's raw signed-header bytes, never from loose JSON
// fields, so the signature always covers exactly what we parsed.
type SessionHeader struct {
	Version    string
	SessionID  string
	Time       uint64
	SentLen    uint64
	RecvLen    uint64
	RootDigest []byte
}

// Total returns the declared transcript length for the given direction.
func (h *SessionHeader) Total(direction string) uint64 {
	if direction == DirectionSent {
		return h.SentLen
	}
	return h.RecvLen
}

// NotarySignature carries the signature scheme tag and the raw signature
// bytes over the canonical session header encoding.
type NotarySignature struct {
	Scheme string `json:"scheme"`
	Sig    []byte `json:"sig"`
}

// Commitment is one cryptographic binding of a transcript sub-range: the
// notary committed to Digest over the Length bytes at Start in the given
// direction. The blinder, when present, is the per-range randomness that
// went into the digest.
type Commitment struct {
	Direction string `json:"direction"`
	Start     uint64 `json:"start"`
	Length    uint64 `json:"length"`
	Digest    []byte `json:"digest"`
	Blinder   []byte `json:"blinder,omitempty"`
}

// End returns the exclusive end offset of the committed range.
func (c *Commitment) End() uint64 {
	return c.Start + c.Length
}

// DisclosedRange is a transcript sub-range the prover chose to reveal,
// together with its literal plaintext bytes.
type DisclosedRange struct {
	Direction string `json:"direction"`
	Start     uint64 `json:"start"`
	Length    uint64 `json:"length"`
	Data      []byte `json:"data"`
}

// End returns the exclusive end offset of the disclosed range.
func (d *DisclosedRange) End() uint64 {
	return d.Start + d.Length
}

// ProofArtifact is the fully decoded proof. It is built by Decode,
// consumed read-only by every later stage, and discarded when the
// verification call returns.
type ProofArtifact struct {
	Version      string           `json:"version"`
	NotaryKeyID  string           `json:"notary_key_id"`
	Signature    NotarySignature  `json:"signature"`
	SignedHeader []byte           `json:"signed_header"`
	Commitments  []Commitment     `json:"commitments"`
	Disclosed    []DisclosedRange `json:"disclosed"`

	// Header is parsed from SignedHeader during decoding.
	Header SessionHeader `json:"-"`
}

// Segment is one element of a verified transcript: either literal
// verified bytes or a redaction of known length and unknown content.
type Segment struct {
	Redacted bool
	Length   uint64
	Data     []byte
}

// VerifiedTranscript is the verification output: for each direction an
// ordered, gapless sequence of segments covering [0, total) exactly
// once. It is immutable and owned by the caller.
type VerifiedTranscript struct {
	SessionID string
	Time      uint64
	Sent      []Segment
	Recv      []Segment
}

// Segments returns the segment list for the given direction.
func (t *VerifiedTranscript) Segments(direction string) []Segment {
	if direction == DirectionSent {
		return t.Sent
	}
	return t.Recv
}

func validVersion(v string) bool {
	return v == VersionV1 || v == VersionV2
}

func validDirection(d string) bool {
	return d == DirectionSent || d == DirectionRecv
}
