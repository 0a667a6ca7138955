package ark

import (
	"fmt"
	"time"
)

// Builder creates signed transactions for one network.
type Builder struct {
	Version byte
	Clock   func() time.Time
}

// NewBuilder returns a builder for the network with the given address
// version byte.
func NewBuilder(version byte) *Builder {
	return &Builder{Version: version, Clock: time.Now}
}

func (b *Builder) now() time.Time {
	if b.Clock == nil {
		return time.Now()
	}
	return b.Clock()
}

// CreateTransaction builds a signed transfer. Empty vendorField and
// secondPassphrase mean none.
func (b *Builder) CreateTransaction(recipientID string, amount int64, vendorField, passphrase, secondPassphrase string) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if err := ValidateAddress(recipientID, b.Version); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Type:        TypeTransfer,
		RecipientID: recipientID,
		VendorField: vendorField,
		Amount:      amount,
		Fee:         TransferFee,
	}
	return b.finish(tx, passphrase, secondPassphrase)
}

// CreateVote builds a signed vote. Each entry is "+" or "-" followed by a
// delegate public key.
func (b *Builder) CreateVote(votes []string, passphrase, secondPassphrase string) (*Transaction, error) {
	if len(votes) == 0 {
		return nil, fmt.Errorf("no votes given")
	}
	for _, vote := range votes {
		if len(vote) < 2 || (vote[0] != '+' && vote[0] != '-') {
			return nil, fmt.Errorf("invalid vote %q", vote)
		}
	}

	keys := NewKeyPair(passphrase)
	tx := &Transaction{
		Type:        TypeVote,
		RecipientID: keys.Address(b.Version),
		Fee:         VoteFee,
		Asset:       Asset{Votes: append([]string(nil), votes...)},
	}
	return b.finish(tx, passphrase, secondPassphrase)
}

// CreateSecondSignature registers secondPassphrase as the account's second
// signature.
func (b *Builder) CreateSecondSignature(passphrase, secondPassphrase string) (*Transaction, error) {
	tx := &Transaction{
		Type: TypeSecondSignature,
		Fee:  SecondSignatureFee,
		Asset: Asset{Signature: &SecondSignatureAsset{
			PublicKey: NewKeyPair(secondPassphrase).PublicKeyHex(),
		}},
	}
	return b.finish(tx, passphrase, "")
}

// CreateDelegate registers the account as a delegate named username.
func (b *Builder) CreateDelegate(username, passphrase, secondPassphrase string) (*Transaction, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	tx := &Transaction{
		Type:  TypeDelegateRegistration,
		Fee:   DelegateRegistrationFee,
		Asset: Asset{Delegate: &DelegateAsset{Username: username}},
	}
	return b.finish(tx, passphrase, secondPassphrase)
}

func (b *Builder) finish(tx *Transaction, passphrase, secondPassphrase string) (*Transaction, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase is required")
	}
	tx.Timestamp = Timestamp(b.now())

	if err := tx.Sign(NewKeyPair(passphrase)); err != nil {
		return nil, err
	}
	if secondPassphrase != "" {
		if err := tx.SecondSign(NewKeyPair(secondPassphrase)); err != nil {
			return nil, err
		}
	}
	if err := tx.ComputeID(); err != nil {
		return nil, err
	}
	return tx, nil
}
