package proofverifier

// Assemble walks the reconciled ranges in ascending offset order and
// emits the final transcript: a Literal segment per disclosed range
// (carrying a copy of its verified bytes) and a Redacted segment per gap
// (carrying only a length; content is never synthesized). The output is
// deterministic and matches original transcript byte order.
func Assemble(a *ProofArtifact, ranges *DirectionRanges) *VerifiedTranscript {
	return &VerifiedTranscript{
		SessionID: a.Header.SessionID,
		Time:      a.Header.Time,
		Sent:      assembleDirection(ranges.Sent),
		Recv:      assembleDirection(ranges.Recv),
	}
}

func assembleDirection(resolved []ResolvedRange) []Segment {
	segments := make([]Segment, 0, len(resolved))
	for _, r := range resolved {
		if r.Data == nil {
			segments = append(segments, Segment{Redacted: true, Length: r.Length})
			continue
		}
		// Copy so the transcript outlives the artifact buffer and
		// cannot alias attacker-reachable memory.
		data := make([]byte, len(r.Data))
		copy(data, r.Data)
		segments = append(segments, Segment{Length: r.Length, Data: data})
	}
	return segments
}
