package proofverifier

import (
	"sort"
)

// ResolvedRange is one span of a fully reconciled direction: disclosed
// when Data is non-nil, redacted otherwise.
type ResolvedRange struct {
	Start  uint64
	Length uint64
	Data   []byte
}

// DirectionRanges is the reconciler output: per direction, an ordered,
// disjoint, gapless list of ranges covering [0, total) exactly.
type DirectionRanges struct {
	Sent []ResolvedRange
	Recv []ResolvedRange
}

// Reconcile merges the disclosed ranges with the implied redacted gaps
// for each direction. Overlap or out-of-bounds is a hard failure; gaps
// between disclosures become redacted ranges, never errors. Pure range
// arithmetic: it assumes the disclosed bytes were already authenticated
// by commitment verification.
func Reconcile(a *ProofArtifact) (*DirectionRanges, error) {
	sent, err := reconcileDirection(DirectionSent, a.Header.SentLen, a.Disclosed)
	if err != nil {
		return nil, err
	}
	recv, err := reconcileDirection(DirectionRecv, a.Header.RecvLen, a.Disclosed)
	if err != nil {
		return nil, err
	}
	return &DirectionRanges{Sent: sent, Recv: recv}, nil
}

func reconcileDirection(direction string, total uint64, disclosed []DisclosedRange) ([]ResolvedRange, error) {
	var ranges []*DisclosedRange
	for i := range disclosed {
		if disclosed[i].Direction == direction {
			ranges = append(ranges, &disclosed[i])
		}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	var resolved []ResolvedRange
	cursor := uint64(0)
	for _, r := range ranges {
		if r.End() > total {
			return nil, rangeConflictf("disclosed %s range [%d, %d) exceeds declared length %d",
				direction, r.Start, r.End(), total)
		}
		if r.Start < cursor {
			return nil, rangeConflictf("disclosed %s ranges overlap at offset %d", direction, r.Start)
		}
		if r.Start > cursor {
			resolved = append(resolved, ResolvedRange{Start: cursor, Length: r.Start - cursor})
		}
		resolved = append(resolved, ResolvedRange{Start: r.Start, Length: r.Length, Data: r.Data})
		cursor = r.End()
	}
	if cursor < total {
		resolved = append(resolved, ResolvedRange{Start: cursor, Length: total - cursor})
	}
	return resolved, nil
}
