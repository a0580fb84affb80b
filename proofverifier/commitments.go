package proofverifier

import (
	"crypto/hmac"
	"crypto/sha256"
	"sort"

	"github.com/zeebo/blake3"
)

// BLAKE3 domain-separation keys for tlsnp/2. The byte values are the
// ASCII encoding of the domain name, zero-padded to 32 bytes, so they
// stay readable in hex dumps. Changing them invalidates all existing
// tlsnp/2 proofs.
var (
	commitmentDomainKey = [32]byte{
		't', 'l', 's', 'n', 'p', '.', 'c', 'o', 'm', 'm', 'i', 't', 'm', 'e', 'n', 't',
	}
	rootDomainKey = [32]byte{
		't', 'l', 's', 'n', 'p', '.', 'r', 'o', 'o', 't',
	}
)

// computeCommitmentDigest recomputes the digest of one committed range
// from disclosed plaintext. The version tag fixes the construction.
func computeCommitmentDigest(version string, blinder, data []byte) []byte {
	switch version {
	case VersionV1:
		mac := hmac.New(sha256.New, blinder)
		mac.Write(data)
		return mac.Sum(nil)
	case VersionV2:
		hasher, err := blake3.NewKeyed(commitmentDomainKey[:])
		if err != nil {
			// The key is a compile-time 32-byte constant; NewKeyed only
			// fails on a wrong key size.
			panic("proofverifier: BLAKE3 keyed hasher init: " + err.Error())
		}
		hasher.Write(blinder)
		hasher.Write(data)
		return hasher.Sum(nil)
	default:
		panic("proofverifier: unknown version past decode: " + version)
	}
}

// computeRootDigest combines the per-commitment digests, in artifact
// order, into the root digest the signed header carries.
func computeRootDigest(version string, digests [][]byte) []byte {
	switch version {
	case VersionV1:
		h := sha256.New()
		for _, d := range digests {
			h.Write(d)
		}
		return h.Sum(nil)
	case VersionV2:
		return merkleRoot(digests)
	default:
		panic("proofverifier: unknown version past decode: " + version)
	}
}

// merkleRoot builds a binary Merkle tree over the digests with the root
// domain key. Adjacent pairs are concatenated and hashed; an odd node is
// promoted to the next level unhashed rather than duplicated, so a
// prefix of another tree's leaves cannot share its root.
func merkleRoot(digests [][]byte) []byte {
	if len(digests) == 0 {
		// Decode rejects artifacts without commitments.
		panic("proofverifier: merkle root over zero digests")
	}

	hasher, err := blake3.NewKeyed(rootDomainKey[:])
	if err != nil {
		panic("proofverifier: BLAKE3 keyed hasher init: " + err.Error())
	}

	level := make([][]byte, len(digests))
	copy(level, digests)

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			hasher.Reset()
			hasher.Write(level[i])
			hasher.Write(level[i+1])
			next = append(next, hasher.Sum(nil))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
}

// VerifyCommitments checks every disclosed range against the commitments
// covering it and the header root digest against the commitment list.
// Any mismatch anywhere fails the whole proof; there is no partial
// acceptance. All digest comparisons are constant-time.
//
// A disclosed range is covered in one of two ways. Either it lies within
// a single commitment, in which case the commitment's digest must equal
// the digest of the disclosed bytes themselves (the commitment was an
// opening for exactly this disclosure), or it exactly tiles a contiguous
// chain of commitments, in which case each commitment's digest is
// recomputed over its slice of the disclosed bytes. A range that
// straddles a commitment boundary without tiling it is rejected:
// partial-commitment disclosure is not a defined operation.
func VerifyCommitments(a *ProofArtifact) error {
	byDirection := map[string][]*Commitment{}
	for i := range a.Commitments {
		c := &a.Commitments[i]
		byDirection[c.Direction] = append(byDirection[c.Direction], c)
	}
	for _, list := range byDirection {
		sort.Slice(list, func(i, j int) bool { return list[i].Start < list[j].Start })
	}

	for i := range a.Disclosed {
		d := &a.Disclosed[i]
		list := byDirection[d.Direction]

		if c := containingCommitment(list, d.Start, d.End()); c != nil {
			digest := computeCommitmentDigest(a.Version, c.Blinder, d.Data)
			if !hmac.Equal(digest, c.Digest) {
				return commitmentMismatchf(
					"digest mismatch for disclosed %s range [%d, %d) against commitment [%d, %d)",
					d.Direction, d.Start, d.End(), c.Start, c.End())
			}
			continue
		}

		chain, ok := coveringChain(list, d.Start, d.End())
		if !ok {
			return commitmentMismatchf(
				"disclosed %s range [%d, %d) does not align to commitment boundaries",
				d.Direction, d.Start, d.End())
		}
		for _, c := range chain {
			sub := d.Data[c.Start-d.Start : c.End()-d.Start]
			digest := computeCommitmentDigest(a.Version, c.Blinder, sub)
			if !hmac.Equal(digest, c.Digest) {
				return commitmentMismatchf(
					"digest mismatch for committed %s range [%d, %d)",
					c.Direction, c.Start, c.End())
			}
		}
	}

	digests := make([][]byte, len(a.Commitments))
	for i := range a.Commitments {
		digests[i] = a.Commitments[i].Digest
	}
	root := computeRootDigest(a.Version, digests)
	if !hmac.Equal(root, a.Header.RootDigest) {
		return commitmentMismatchf("header root digest does not match commitment list")
	}
	return nil
}

// containingCommitment returns the single commitment that fully contains
// [start, end), or nil. Commitments per direction are disjoint, so at
// most one candidate exists.
func containingCommitment(sorted []*Commitment, start, end uint64) *Commitment {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].Start > start })
	if idx == 0 {
		return nil
	}
	c := sorted[idx-1]
	if c.Start <= start && end <= c.End() {
		return c
	}
	return nil
}

// coveringChain finds the contiguous run of commitments that exactly
// tiles [start, end). Disclosure of a partial commitment is not a
// defined operation, so the first commitment must begin at start, each
// following one at the previous end, and the last must end at end.
func coveringChain(sorted []*Commitment, start, end uint64) ([]*Commitment, bool) {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].Start >= start })
	if idx == len(sorted) || sorted[idx].Start != start {
		return nil, false
	}

	var chain []*Commitment
	cursor := start
	for idx < len(sorted) && cursor < end {
		c := sorted[idx]
		if c.Start != cursor || c.End() > end {
			return nil, false
		}
		chain = append(chain, c)
		cursor = c.End()
		idx++
	}
	if cursor != end {
		return nil, false
	}
	return chain, true
}
