package ark

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Address version bytes
const (
	MainnetVersion byte = 0x17
	DevnetVersion  byte = 0x1e
)

// KeyPair is the secp256k1 key derived from a passphrase
type KeyPair struct {
	privateKey *btcec.PrivateKey
}

// NewKeyPair derives the key pair whose private scalar is sha256(passphrase).
func NewKeyPair(passphrase string) *KeyPair {
	privateKey, _ := btcec.PrivKeyFromBytes(chainhash.HashB([]byte(passphrase)))
	return &KeyPair{privateKey: privateKey}
}

// PublicKey returns the 33-byte compressed public key.
func (k *KeyPair) PublicKey() []byte {
	return k.privateKey.PubKey().SerializeCompressed()
}

func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey())
}

// PrivateKeyHex returns the raw private scalar, for export only.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.privateKey.Serialize())
}

// Address returns the base58check address for the given version byte.
func (k *KeyPair) Address(version byte) string {
	return AddressFromPublicKey(k.PublicKey(), version)
}

// Sign returns the DER encoded signature of hash.
func (k *KeyPair) Sign(hash []byte) []byte {
	return ecdsa.Sign(k.privateKey, hash).Serialize()
}

// AddressFromPublicKey encodes version || ripemd160(publicKey) with a
// base58check checksum.
func AddressFromPublicKey(publicKey []byte, version byte) string {
	h := ripemd160.New()
	h.Write(publicKey)
	return base58.CheckEncode(h.Sum(nil), version)
}

// DecodeAddress returns the 21 address bytes (version byte first).
func DecodeAddress(address string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", address, err)
	}
	if len(payload) != ripemd160.Size {
		return nil, fmt.Errorf("invalid address %q: unexpected length %d", address, len(payload))
	}
	return append([]byte{version}, payload...), nil
}

// ValidateAddress checks the checksum and the version byte of address.
func ValidateAddress(address string, version byte) error {
	raw, err := DecodeAddress(address)
	if err != nil {
		return err
	}
	if raw[0] != version {
		return fmt.Errorf("address %q belongs to network version 0x%02x, expected 0x%02x", address, raw[0], version)
	}
	return nil
}

// VerifySignature checks a DER signature of hash against a hex public key.
func VerifySignature(publicKeyHex string, hash, signature []byte) (bool, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("invalid public key: %w", err)
	}
	publicKey, err := btcec.ParsePubKey(raw)
	if err != nil {
		return false, fmt.Errorf("invalid public key: %w", err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, fmt.Errorf("invalid signature: %w", err)
	}
	return sig.Verify(hash, publicKey), nil
}
