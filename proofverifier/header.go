package proofverifier

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// headerMagic is the domain-separation prefix of the canonical session
// header encoding. Changing it invalidates every existing signature.
const headerMagic = "TLSNP_HDR\x00"

// EncodeSessionHeader produces the canonical byte encoding of a session
// header, the exact bytes a notary signs. Layout: magic, u8-length-prefixed
// version and session id, big-endian u64 time and per-direction totals,
// 32-byte root digest.
func EncodeSessionHeader(h *SessionHeader) ([]byte, error) {
	if len(h.RootDigest) != DigestSize {
		return nil, fmt.Errorf("root digest must be %d bytes, got %d", DigestSize, len(h.RootDigest))
	}
	if len(h.Version) == 0 || len(h.Version) > 255 {
		return nil, fmt.Errorf("version tag length %d out of range", len(h.Version))
	}
	if len(h.SessionID) == 0 || len(h.SessionID) > 255 {
		return nil, fmt.Errorf("session id length %d out of range", len(h.SessionID))
	}

	var b cryptobyte.Builder
	b.AddBytes([]byte(headerMagic))
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(h.Version))
	})
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(h.SessionID))
	})
	b.AddUint64(h.Time)
	b.AddUint64(h.SentLen)
	b.AddUint64(h.RecvLen)
	b.AddBytes(h.RootDigest)
	return b.Bytes()
}

// parseSignedHeader decodes the canonical header encoding. The input is
// attacker-controlled: every read is bounds-checked via cryptobyte and
// any truncation, bad magic, or trailing garbage is an error. The caller
// wraps failures as KindMalformed.
func parseSignedHeader(raw []byte) (SessionHeader, error) {
	var h SessionHeader
	s := cryptobyte.String(raw)

	var magic []byte
	if !s.ReadBytes(&magic, len(headerMagic)) {
		return h, fmt.Errorf("signed header truncated before magic")
	}
	if !bytes.Equal(magic, []byte(headerMagic)) {
		return h, fmt.Errorf("signed header has wrong magic")
	}

	var version, sessionID cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&version) || version.Empty() {
		return h, fmt.Errorf("signed header missing version tag")
	}
	if !s.ReadUint8LengthPrefixed(&sessionID) || sessionID.Empty() {
		return h, fmt.Errorf("signed header missing session id")
	}
	if !s.ReadUint64(&h.Time) || !s.ReadUint64(&h.SentLen) || !s.ReadUint64(&h.RecvLen) {
		return h, fmt.Errorf("signed header truncated in fixed fields")
	}

	var root []byte
	if !s.ReadBytes(&root, DigestSize) {
		return h, fmt.Errorf("signed header truncated in root digest")
	}
	if !s.Empty() {
		return h, fmt.Errorf("signed header has %d trailing bytes", len(s))
	}

	h.Version = string(version)
	h.SessionID = string(sessionID)
	h.RootDigest = root
	return h, nil
}
