package api

import (
	"context"
	"net/url"
)

// GetAccount fetches the account at address. A nil account with a nil error
// means the node does not know it.
func (c *Client) GetAccount(ctx context.Context, address string) (*Account, error) {
	q := url.Values{}
	q.Set("address", address)
	return getEnvelope[Account](ctx, c, "accounts", q, "account")
}

// GetBalance returns the confirmed balance of address in ARK.
func (c *Client) GetBalance(ctx context.Context, address string) (*float64, error) {
	account, err := c.GetAccount(ctx, address)
	if err != nil || account == nil {
		return nil, err
	}
	balance := account.DisplayBalance()
	return &balance, nil
}

// GetPublicKey returns the public key of address. Accounts that never sent a
// transaction have none.
func (c *Client) GetPublicKey(ctx context.Context, address string) (*string, error) {
	account, err := c.GetAccount(ctx, address)
	if err != nil || account == nil || account.PublicKey == "" {
		return nil, err
	}
	publicKey := account.PublicKey
	return &publicKey, nil
}

// GetVote returns the delegate address currently votes for, nil if none.
func (c *Client) GetVote(ctx context.Context, address string) (*Delegate, error) {
	q := url.Values{}
	q.Set("address", address)
	return first[Delegate](getEnvelope[[]Delegate](ctx, c, "accounts/delegates", q, "delegates"))
}
