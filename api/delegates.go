package api

import (
	"context"
	"net/url"
)

const orderByRateAsc = "rate:asc"

// GetDelegate fetches the delegate registered as username.
func (c *Client) GetDelegate(ctx context.Context, username string) (*Delegate, error) {
	q := url.Values{}
	q.Set("username", username)
	return getEnvelope[Delegate](ctx, c, "delegates/get", q, "delegate")
}

// GetDelegates returns the forging set in node order.
func (c *Client) GetDelegates(ctx context.Context) ([]Delegate, error) {
	return list[Delegate](getEnvelope[[]Delegate](ctx, c, "delegates", nil, "delegates"))
}

// GetStandbyDelegates returns the delegates ranked just below the forging set.
func (c *Client) GetStandbyDelegates(ctx context.Context) ([]Delegate, error) {
	return c.GetDelegatesPage(ctx, ActiveDelegates, ActiveDelegates)
}

// GetDelegatesPage returns one page of delegates ordered by rank.
func (c *Client) GetDelegatesPage(ctx context.Context, limit, offset int) ([]Delegate, error) {
	q := pageQuery(limit, offset)
	q.Set("orderBy", orderByRateAsc)
	return list[Delegate](getEnvelope[[]Delegate](ctx, c, "delegates", q, "delegates"))
}

// GetVoters returns the accounts voting for the delegate with publicKey.
func (c *Client) GetVoters(ctx context.Context, publicKey string) ([]Voter, error) {
	q := url.Values{}
	q.Set("publicKey", publicKey)
	return list[Voter](getEnvelope[[]Voter](ctx, c, "delegates/voters", q, "accounts"))
}

func (c *Client) GetVotersOf(ctx context.Context, d Delegate) ([]Voter, error) {
	return c.GetVoters(ctx, d.PublicKey)
}
