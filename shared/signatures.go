package shared

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Ethereum-style notary signatures: secp256k1 recoverable signatures
// over the Ethereum text hash of the signed bytes. Verification only
// needs the notary's address, not the full public key.

const ethSignatureSize = 65

// SigningKeyPair is an ECDSA secp256k1 key pair. The verifier only ever
// needs public material; the signing half exists for tests and tooling
// that fabricate notarized artifacts.
type SigningKeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  *ecdsa.PublicKey
}

// GenerateSigningKeyPair generates a new secp256k1 key pair.
func GenerateSigningKeyPair() (*SigningKeyPair, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ECDSA key pair: %v", err)
	}
	return &SigningKeyPair{
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}, nil
}

// SignData signs the given data Ethereum-style. Returns a 65-byte
// signature with recovery id.
func (kp *SigningKeyPair) SignData(data []byte) ([]byte, error) {
	hash := accounts.TextHash(data)
	signature, err := crypto.Sign(hash, kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %v", err)
	}
	return signature, nil
}

// EthAddress returns the Ethereum address for this key pair.
func (kp *SigningKeyPair) EthAddress() common.Address {
	return crypto.PubkeyToAddress(*kp.PublicKey)
}

// VerifyEthSignature verifies an Ethereum-style signature against the
// given data and expected signer address. The public key is recovered
// from the signature itself and reduced to an address for comparison.
func VerifyEthSignature(data []byte, signature []byte, expectedAddress common.Address) error {
	if len(signature) != ethSignatureSize {
		return fmt.Errorf("invalid ETH signature length: expected %d bytes, got %d",
			ethSignatureSize, len(signature))
	}

	hash := accounts.TextHash(data)

	recoveredPubKey, err := crypto.SigToPub(hash, signature)
	if err != nil {
		return fmt.Errorf("failed to recover public key from signature: %v", err)
	}

	recoveredAddress := crypto.PubkeyToAddress(*recoveredPubKey)
	if recoveredAddress != expectedAddress {
		return fmt.Errorf("signature verification failed: expected address %s, got %s",
			expectedAddress.Hex(), recoveredAddress.Hex())
	}
	return nil
}
