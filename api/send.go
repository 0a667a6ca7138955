package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/chinmay1088/arkgo/chains/ark"
	"go.uber.org/zap"
)

var (
	// ErrNoSigner is returned by write methods when no Signer was configured.
	ErrNoSigner = errors.New("no transaction signer configured")
	// ErrNoBroadcaster is returned by write methods when no Broadcaster was
	// configured.
	ErrNoBroadcaster = errors.New("no broadcaster configured")
)

// Signer builds signed transactions. An empty secondPassphrase or
// vendorField means none.
type Signer interface {
	CreateTransaction(recipientID string, amount int64, vendorField, passphrase, secondPassphrase string) (*ark.Transaction, error)
	CreateVote(votes []string, passphrase, secondPassphrase string) (*ark.Transaction, error)
}

// Broadcaster picks a peer and submits signed transactions to it.
type Broadcaster interface {
	RandomPeer(ctx context.Context) (*Peer, error)
	PostTransaction(ctx context.Context, peer Peer, tx *ark.Transaction) error
}

// SendTransaction signs a transfer of amount to recipientID and broadcasts it
// to one random peer. It is not retried.
func (c *Client) SendTransaction(ctx context.Context, recipientID string, amount Arktoshi, passphrase, secondPassphrase, vendorField string) (*ark.Transaction, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}

	tx, err := c.signer.CreateTransaction(recipientID, int64(amount), vendorField, passphrase, secondPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return c.broadcast(ctx, tx)
}

// SendVote votes for delegate.
func (c *Client) SendVote(ctx context.Context, delegate Delegate, passphrase, secondPassphrase string) (*ark.Transaction, error) {
	return c.sendVotes(ctx, "+"+delegate.PublicKey, passphrase, secondPassphrase)
}

// SendUnvote removes a vote for delegate.
func (c *Client) SendUnvote(ctx context.Context, delegate Delegate, passphrase, secondPassphrase string) (*ark.Transaction, error) {
	return c.sendVotes(ctx, "-"+delegate.PublicKey, passphrase, secondPassphrase)
}

func (c *Client) sendVotes(ctx context.Context, vote, passphrase, secondPassphrase string) (*ark.Transaction, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}

	tx, err := c.signer.CreateVote([]string{vote}, passphrase, secondPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	return c.broadcast(ctx, tx)
}

func (c *Client) broadcast(ctx context.Context, tx *ark.Transaction) (*ark.Transaction, error) {
	if c.network == nil {
		return nil, ErrNoBroadcaster
	}

	peer, err := c.network.RandomPeer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select peer: %w", err)
	}

	if err := c.network.PostTransaction(ctx, *peer, tx); err != nil {
		return nil, fmt.Errorf("failed to broadcast transaction %s: %w", tx.ID, err)
	}

	c.logger.Info("transaction broadcast", zap.String("id", tx.ID), zap.String("peer", peer.Address()))
	return tx, nil
}
