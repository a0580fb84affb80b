package proofverifier

import (
	"crypto/ecdsa"
	"crypto/sha256"

	"tlsn-verify/shared"
)

// VerifySignature checks the notary's signature over the artifact's raw
// signed-header bytes against the key store. Verification always runs on
// the exact bytes that were signed, never a re-serialization of the
// parsed header, so encoding ambiguity cannot produce a false accept.
func VerifySignature(a *ProofArtifact, keys *shared.KeyStore) error {
	if keys == nil {
		return badSignaturef("no notary key material supplied")
	}
	entry, ok := keys.Lookup(a.NotaryKeyID)
	if !ok {
		return badSignaturef("unknown notary key id %q", a.NotaryKeyID)
	}
	if entry.Scheme != a.Signature.Scheme {
		return badSignaturef("artifact uses scheme %q but key %q is registered for %q",
			a.Signature.Scheme, a.NotaryKeyID, entry.Scheme)
	}

	switch entry.Scheme {
	case shared.SignatureSchemeECDSAP256:
		hash := sha256.Sum256(a.SignedHeader)
		if !ecdsa.VerifyASN1(entry.ECDSAKey, hash[:], a.Signature.Sig) {
			return badSignaturef("ECDSA P-256 verification failed for key %q", a.NotaryKeyID)
		}
	case shared.SignatureSchemeEthSecp256k1:
		if err := shared.VerifyEthSignature(a.SignedHeader, a.Signature.Sig, entry.EthAddress); err != nil {
			return badSignatureErr("secp256k1 verification failed", err)
		}
	default:
		// Decode gates the scheme tag and the key store only accepts
		// known schemes, so this is unreachable without a code bug.
		return badSignaturef("unsupported signature scheme %q", entry.Scheme)
	}
	return nil
}
