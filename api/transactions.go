package api

import (
	"context"
	"net/url"
)

// GetTransactions returns the latest confirmed transactions in node order.
func (c *Client) GetTransactions(ctx context.Context) ([]Transaction, error) {
	return list[Transaction](getEnvelope[[]Transaction](ctx, c, "transactions", nil, "transactions"))
}

// GetTransactionsPage returns one page of the latest transactions.
func (c *Client) GetTransactionsPage(ctx context.Context, limit, offset int) ([]Transaction, error) {
	return list[Transaction](getEnvelope[[]Transaction](ctx, c, "transactions", pageQuery(limit, offset), "transactions"))
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	q := url.Values{}
	q.Set("id", id)
	return getEnvelope[Transaction](ctx, c, "transactions/get", q, "transaction")
}

// GetSentTransactions returns transactions sent by address.
func (c *Client) GetSentTransactions(ctx context.Context, address string) ([]Transaction, error) {
	q := url.Values{}
	q.Set("senderId", address)
	return list[Transaction](getEnvelope[[]Transaction](ctx, c, "transactions", q, "transactions"))
}

// GetReceivedTransactions returns transactions received by address.
func (c *Client) GetReceivedTransactions(ctx context.Context, address string) ([]Transaction, error) {
	q := url.Values{}
	q.Set("recipientId", address)
	return list[Transaction](getEnvelope[[]Transaction](ctx, c, "transactions", q, "transactions"))
}
