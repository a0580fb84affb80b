package shared

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Supported notary signature schemes. These are a closed set: artifacts
// naming any other scheme are rejected during decoding.
const (
	// SignatureSchemeECDSAP256 is an ASN.1 DER ECDSA signature over the
	// SHA-256 of the signed bytes, verified with a P-256 public key.
	SignatureSchemeECDSAP256 = "ecdsa-p256"
	// SignatureSchemeEthSecp256k1 is a 65-byte recoverable secp256k1
	// signature over the Ethereum text hash of the signed bytes,
	// verified against an Ethereum address.
	SignatureSchemeEthSecp256k1 = "eth-secp256k1"
)

// KeyEntry is the public material for one notary under one scheme.
// Exactly one of ECDSAKey or EthAddress is populated, per Scheme.
type KeyEntry struct {
	Scheme     string
	ECDSAKey   *ecdsa.PublicKey
	EthAddress common.Address
}

// KeyStore maps notary key ids to public key material. It is built up
// front by the caller, then treated as read-only for the lifetime of
// every verification that receives it, so concurrent verifications may
// share one store without locking.
type KeyStore struct {
	keys map[string]KeyEntry
}

// NewKeyStore returns an empty key store.
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]KeyEntry)}
}

// AddECDSAPublicKeyPEM registers a P-256 public key from its PKIX PEM
// encoding under the given id.
func (ks *KeyStore) AddECDSAPublicKeyPEM(id string, pemBytes []byte) error {
	block, _ := pem.Decode(pemBytes)
	if block == nil || block.Type != "PUBLIC KEY" {
		return fmt.Errorf("key %q: not a PEM public key", id)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("key %q: %v", id, err)
	}
	pub, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return fmt.Errorf("key %q: not an ECDSA public key", id)
	}
	if pub.Curve != elliptic.P256() {
		return fmt.Errorf("key %q: curve %s is not P-256", id, pub.Curve.Params().Name)
	}
	ks.keys[id] = KeyEntry{Scheme: SignatureSchemeECDSAP256, ECDSAKey: pub}
	return nil
}

// AddECDSAPublicKey registers an already-parsed P-256 public key.
func (ks *KeyStore) AddECDSAPublicKey(id string, pub *ecdsa.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("key %q: nil public key", id)
	}
	if pub.Curve != elliptic.P256() {
		return fmt.Errorf("key %q: curve %s is not P-256", id, pub.Curve.Params().Name)
	}
	ks.keys[id] = KeyEntry{Scheme: SignatureSchemeECDSAP256, ECDSAKey: pub}
	return nil
}

// AddEthAddress registers a notary Ethereum address under the given id.
func (ks *KeyStore) AddEthAddress(id string, hexAddr string) error {
	if !common.IsHexAddress(hexAddr) {
		return fmt.Errorf("key %q: %q is not a hex address", id, hexAddr)
	}
	ks.keys[id] = KeyEntry{
		Scheme:     SignatureSchemeEthSecp256k1,
		EthAddress: common.HexToAddress(hexAddr),
	}
	return nil
}

// Lookup returns the entry for the given key id.
func (ks *KeyStore) Lookup(id string) (KeyEntry, bool) {
	entry, ok := ks.keys[id]
	return entry, ok
}

// Len returns the number of registered keys.
func (ks *KeyStore) Len() int {
	return len(ks.keys)
}
