package ark

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Transaction types understood by the builder
const (
	TypeTransfer             uint8 = 0
	TypeSecondSignature      uint8 = 1
	TypeDelegateRegistration uint8 = 2
	TypeVote                 uint8 = 3
)

// Fees in arktoshi
const (
	TransferFee             int64 = 10000000
	VoteFee                 int64 = 100000000
	SecondSignatureFee      int64 = 500000000
	DelegateRegistrationFee int64 = 2500000000
)

// MaxVendorFieldLength is the vendor field size in bytes.
const MaxVendorFieldLength = 64

// Epoch is the zero point of transaction timestamps.
var Epoch = time.Date(2017, time.March, 21, 13, 0, 0, 0, time.UTC)

// Timestamp returns the number of seconds between Epoch and t.
func Timestamp(t time.Time) int32 {
	return int32(t.Sub(Epoch) / time.Second)
}

type SecondSignatureAsset struct {
	PublicKey string `json:"publicKey"`
}

type DelegateAsset struct {
	Username string `json:"username"`
}

// Asset holds the type specific payload of a transaction.
type Asset struct {
	Signature *SecondSignatureAsset `json:"signature,omitempty"`
	Delegate  *DelegateAsset        `json:"delegate,omitempty"`
	Votes     []string              `json:"votes,omitempty"`
}

// Transaction is a v1 transaction in the shape peers accept on broadcast.
type Transaction struct {
	ID              string `json:"id"`
	Type            uint8  `json:"type"`
	Timestamp       int32  `json:"timestamp"`
	SenderPublicKey string `json:"senderPublicKey"`
	RecipientID     string `json:"recipientId,omitempty"`
	VendorField     string `json:"vendorField,omitempty"`
	Amount          int64  `json:"amount"`
	Fee             int64  `json:"fee"`
	Asset           Asset  `json:"asset"`
	Signature       string `json:"signature,omitempty"`
	SignSignature   string `json:"signSignature,omitempty"`
}

// Bytes serialises the transaction. Signatures are appended unless skipped.
func (tx *Transaction) Bytes(skipSignature, skipSecondSignature bool) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(tx.Type)
	binary.Write(&buf, binary.LittleEndian, tx.Timestamp)

	senderPublicKey, err := hex.DecodeString(tx.SenderPublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid sender public key: %w", err)
	}
	buf.Write(senderPublicKey)

	recipient := make([]byte, 21)
	if tx.RecipientID != "" {
		recipient, err = DecodeAddress(tx.RecipientID)
		if err != nil {
			return nil, err
		}
	}
	buf.Write(recipient)

	if len(tx.VendorField) > MaxVendorFieldLength {
		return nil, fmt.Errorf("vendor field exceeds %d bytes", MaxVendorFieldLength)
	}
	vendorField := make([]byte, MaxVendorFieldLength)
	copy(vendorField, tx.VendorField)
	buf.Write(vendorField)

	binary.Write(&buf, binary.LittleEndian, tx.Amount)
	binary.Write(&buf, binary.LittleEndian, tx.Fee)

	switch tx.Type {
	case TypeSecondSignature:
		if tx.Asset.Signature == nil {
			return nil, fmt.Errorf("second signature transaction without public key")
		}
		publicKey, err := hex.DecodeString(tx.Asset.Signature.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("invalid second public key: %w", err)
		}
		buf.Write(publicKey)
	case TypeDelegateRegistration:
		if tx.Asset.Delegate == nil {
			return nil, fmt.Errorf("delegate registration without username")
		}
		buf.WriteString(tx.Asset.Delegate.Username)
	case TypeVote:
		buf.WriteString(strings.Join(tx.Asset.Votes, ""))
	}

	if !skipSignature && tx.Signature != "" {
		sig, err := hex.DecodeString(tx.Signature)
		if err != nil {
			return nil, fmt.Errorf("invalid signature: %w", err)
		}
		buf.Write(sig)
	}
	if !skipSecondSignature && tx.SignSignature != "" {
		sig, err := hex.DecodeString(tx.SignSignature)
		if err != nil {
			return nil, fmt.Errorf("invalid second signature: %w", err)
		}
		buf.Write(sig)
	}

	return buf.Bytes(), nil
}

// Sign sets Signature from keys and clears any second signature.
func (tx *Transaction) Sign(keys *KeyPair) error {
	tx.SenderPublicKey = keys.PublicKeyHex()
	tx.SignSignature = ""

	data, err := tx.Bytes(true, true)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction: %w", err)
	}
	tx.Signature = hex.EncodeToString(keys.Sign(chainhash.HashB(data)))
	return nil
}

// SecondSign sets SignSignature over the bytes including the first signature.
func (tx *Transaction) SecondSign(keys *KeyPair) error {
	data, err := tx.Bytes(false, true)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction: %w", err)
	}
	tx.SignSignature = hex.EncodeToString(keys.Sign(chainhash.HashB(data)))
	return nil
}

// ComputeID sets ID to the hex sha256 of the fully signed bytes.
func (tx *Transaction) ComputeID() error {
	data, err := tx.Bytes(false, false)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction: %w", err)
	}
	tx.ID = hex.EncodeToString(chainhash.HashB(data))
	return nil
}

// Verify checks the first signature against the sender public key.
func (tx *Transaction) Verify() (bool, error) {
	sig, err := hex.DecodeString(tx.Signature)
	if err != nil || len(sig) == 0 {
		return false, fmt.Errorf("transaction is not signed")
	}
	data, err := tx.Bytes(true, true)
	if err != nil {
		return false, err
	}
	return VerifySignature(tx.SenderPublicKey, chainhash.HashB(data), sig)
}

// VerifySecond checks the second signature against secondPublicKey.
func (tx *Transaction) VerifySecond(secondPublicKey string) (bool, error) {
	sig, err := hex.DecodeString(tx.SignSignature)
	if err != nil || len(sig) == 0 {
		return false, fmt.Errorf("transaction has no second signature")
	}
	data, err := tx.Bytes(false, true)
	if err != nil {
		return false, err
	}
	return VerifySignature(secondPublicKey, chainhash.HashB(data), sig)
}
