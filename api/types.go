package api

import (
	"fmt"
	"net"
	"strconv"

	"github.com/shopspring/decimal"
)

// Account is a wallet as reported by accounts?address=.
type Account struct {
	Address              string   `json:"address" validate:"required"`
	PublicKey            string   `json:"publicKey"`
	UnconfirmedSignature *int     `json:"unconfirmedSignature"`
	SecondSignature      *int     `json:"secondSignature"`
	SecondPublicKey      *string  `json:"secondPublicKey"`
	Balance              Arktoshi `json:"balance"`
	UnconfirmedBalance   Arktoshi `json:"unconfirmedBalance"`
}

// DisplayBalance returns the confirmed balance in ARK.
func (a Account) DisplayBalance() float64 {
	return a.Balance.Ark()
}

// DisplayUnconfirmedBalance returns the unconfirmed balance in ARK.
func (a Account) DisplayUnconfirmedBalance() float64 {
	return a.UnconfirmedBalance.Ark()
}

// HasSecondSignature reports whether a second passphrase is registered.
func (a Account) HasSecondSignature() bool {
	return a.SecondSignature != nil && *a.SecondSignature != 0
}

// Block is a forged block. PreviousBlock of the block at height N is the ID of
// the block at height N-1.
type Block struct {
	ID                   string   `json:"id" validate:"required"`
	Version              int      `json:"version"`
	Timestamp            int64    `json:"timestamp"`
	Height               int64    `json:"height" validate:"required"`
	PreviousBlock        string   `json:"previousBlock"`
	NumberOfTransactions int      `json:"numberOfTransactions"`
	TotalAmount          Arktoshi `json:"totalAmount"`
	TotalFee             Arktoshi `json:"totalFee"`
	Reward               Arktoshi `json:"reward"`
	PayloadLength        int      `json:"payloadLength"`
	PayloadHash          string   `json:"payloadHash"`
	GeneratorPublicKey   string   `json:"generatorPublicKey"`
	GeneratorID          string   `json:"generatorId"`
	BlockSignature       string   `json:"blockSignature"`
	Confirmations        int64    `json:"confirmations"`
	TotalForged          Arktoshi `json:"totalForged"`
}

// Delegate is a registered delegate. Vote is the weight currently voted for it.
type Delegate struct {
	Username       string   `json:"username" validate:"required"`
	Address        string   `json:"address" validate:"required"`
	PublicKey      string   `json:"publicKey" validate:"required"`
	ProducedBlocks int64    `json:"producedblocks"`
	MissedBlocks   int64    `json:"missedblocks"`
	Rate           int      `json:"rate"`
	Approval       float64  `json:"approval"`
	Productivity   float64  `json:"productivity"`
	Vote           Arktoshi `json:"vote"`
}

// WithMissedBlocks returns a copy of d with the missed block count replaced.
func (d Delegate) WithMissedBlocks(missed int64) Delegate {
	d.MissedBlocks = missed
	return d
}

// IsForging reports whether the delegate ranks inside the active set.
func (d Delegate) IsForging() bool {
	return d.Rate > 0 && d.Rate <= ActiveDelegates
}

// Peer is a node known to the queried node. Delay is the round trip in ms.
type Peer struct {
	IP      string `json:"ip" validate:"required"`
	Port    int    `json:"port" validate:"required"`
	Version string `json:"version"`
	Errors  int    `json:"errors"`
	OS      string `json:"os"`
	Height  int64  `json:"height"`
	Status  string `json:"status"`
	Delay   int    `json:"delay"`
}

// WithDelay returns a copy of p with the delay replaced.
func (p Peer) WithDelay(delay int) Peer {
	p.Delay = delay
	return p
}

// IsOK reports whether the node considers the peer healthy.
func (p Peer) IsOK() bool {
	return p.Status == "OK"
}

// Address returns ip:port, with IPv6 literals bracketed.
func (p Peer) Address() string {
	return net.JoinHostPort(p.IP, strconv.Itoa(p.Port))
}

// PeerVersion is the software version reported by peers/version.
type PeerVersion struct {
	Version string `json:"version" validate:"required"`
	Build   string `json:"build"`
}

// SyncStatus is the loader state of the queried node.
type SyncStatus struct {
	ID      string `json:"id"`
	Syncing bool   `json:"syncing"`
	Blocks  int64  `json:"blocks"`
	Height  int64  `json:"height" validate:"required"`
}

// TransactionType is the numeric discriminant of a transaction. Nodes may
// introduce codes not listed here.
type TransactionType int

const (
	TypeTransfer TransactionType = iota
	TypeSecondSignature
	TypeDelegateRegistration
	TypeVote
	TypeMultiSignature
	TypeIPFS
	TypeTimelockTransfer
	TypeMultiPayment
	TypeDelegateResignation
)

var transactionTypeNames = map[TransactionType]string{
	TypeTransfer:             "transfer",
	TypeSecondSignature:      "second-signature",
	TypeDelegateRegistration: "delegate-registration",
	TypeVote:                 "vote",
	TypeMultiSignature:       "multi-signature",
	TypeIPFS:                 "ipfs",
	TypeTimelockTransfer:     "timelock-transfer",
	TypeMultiPayment:         "multi-payment",
	TypeDelegateResignation:  "delegate-resignation",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Transaction is a confirmed transaction as returned by the node.
type Transaction struct {
	ID              string          `json:"id" validate:"required"`
	BlockID         string          `json:"blockid"`
	Height          int64           `json:"height"`
	Type            TransactionType `json:"type"`
	Timestamp       int64           `json:"timestamp"`
	Amount          Arktoshi        `json:"amount"`
	Fee             Arktoshi        `json:"fee"`
	SenderID        string          `json:"senderId"`
	RecipientID     string          `json:"recipientId"`
	SenderPublicKey string          `json:"senderPublicKey"`
	Signature       string          `json:"signature"`
	VendorField     *string         `json:"vendorField"`
	Confirmations   int64           `json:"confirmations"`
}

func (t Transaction) DisplayAmount() float64 {
	return t.Amount.Ark()
}

func (t Transaction) DisplayFee() float64 {
	return t.Fee.Ark()
}

// Voter is an account voting for a delegate.
type Voter struct {
	Username       *string  `json:"username"`
	Address        string   `json:"address" validate:"required"`
	PublicKey      string   `json:"publicKey"`
	ProducedBlocks int64    `json:"producedblocks"`
	Balance        Arktoshi `json:"balance"`
}

// DisplayBalance returns the voter balance in ARK.
func (v Voter) DisplayBalance() float64 {
	return v.Balance.Ark()
}

// Ticker maps currency codes from TickerCurrencies to the price of one ARK.
type Ticker struct {
	rates map[string]decimal.Decimal
}

// Rate returns the price of one ARK in the given currency.
func (t Ticker) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := t.rates[code]
	return rate, ok
}

// Rates returns a copy of all known rates.
func (t Ticker) Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// Envelope is the {success, <field>} wrapper every node response uses.
// Payload is nil when the resource is absent.
type Envelope[T any] struct {
	Success bool
	Payload *T
}
