package proofverifier

import (
	"go.uber.org/zap"

	"tlsn-verify/shared"
)

// Verifier runs the full verification pipeline:
//
//	Decode -> VerifySignature -> VerifyCommitments -> Reconcile -> Assemble
//
// The first failing stage short-circuits the rest; the error is always a
// *ProofError carrying one of the four kinds. Decoding precedes all
// verification; signature and commitment verification both run before
// reconciliation, since reconciliation assumes the disclosed bytes are
// already proven authentic.
//
// A Verifier is a pure function of (artifact bytes, key store): it holds
// no mutable state, so one instance may serve concurrent verifications.
type Verifier struct {
	keys   *shared.KeyStore
	logger *shared.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger attaches a logger to the pipeline. Without it the verifier
// is silent.
func WithLogger(logger *shared.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVerifier builds a verifier over the given read-only key store.
func NewVerifier(keys *shared.KeyStore, opts ...Option) *Verifier {
	v := &Verifier{
		keys:   keys,
		logger: shared.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DecodeAndVerify is the single entry point external callers use: it
// takes one complete artifact buffer and returns either a fully verified
// transcript or the first stage failure.
func (v *Verifier) DecodeAndVerify(raw []byte) (*VerifiedTranscript, error) {
	artifact, err := Decode(raw)
	if err != nil {
		v.logger.Security("proof rejected", zap.String("stage", "decode"), zap.Error(err))
		return nil, err
	}
	log := v.logger.WithSession(artifact.Header.SessionID)
	log.Debug("artifact decoded",
		zap.String("version", artifact.Version),
		zap.Int("commitments", len(artifact.Commitments)),
		zap.Int("disclosed", len(artifact.Disclosed)))

	if err := VerifySignature(artifact, v.keys); err != nil {
		v.logger.Security("proof rejected", zap.String("stage", "signature"), zap.Error(err))
		return nil, err
	}
	if err := VerifyCommitments(artifact); err != nil {
		v.logger.Security("proof rejected", zap.String("stage", "commitments"), zap.Error(err))
		return nil, err
	}
	ranges, err := Reconcile(artifact)
	if err != nil {
		v.logger.Security("proof rejected", zap.String("stage", "reconcile"), zap.Error(err))
		return nil, err
	}

	transcript := Assemble(artifact, ranges)
	log.Info("proof verified",
		zap.Uint64("sent_len", artifact.Header.SentLen),
		zap.Uint64("recv_len", artifact.Header.RecvLen))
	return transcript, nil
}

// DecodeAndVerify verifies one artifact buffer against the key store.
// Convenience wrapper for callers that do not need a long-lived
// Verifier.
func DecodeAndVerify(raw []byte, keys *shared.KeyStore) (*VerifiedTranscript, error) {
	return NewVerifier(keys).DecodeAndVerify(raw)
}
