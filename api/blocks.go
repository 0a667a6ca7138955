package api

import (
	"context"
	"net/url"
)

const orderByHeightDesc = "height:desc"

// GetBlock fetches the block with id, nil if the node does not know it.
func (c *Client) GetBlock(ctx context.Context, id string) (*Block, error) {
	q := url.Values{}
	q.Set("id", id)
	return getEnvelope[Block](ctx, c, "blocks/get", q, "block")
}

// GetBlocks returns the most recent blocks in node order.
func (c *Client) GetBlocks(ctx context.Context) ([]Block, error) {
	return list[Block](getEnvelope[[]Block](ctx, c, "blocks", nil, "blocks"))
}

// GetBlocksByGenerator returns blocks forged by the given public key, newest
// first. The node caps limit, usually at MaxPageSize.
func (c *Client) GetBlocksByGenerator(ctx context.Context, generatorPublicKey string, limit, offset int) ([]Block, error) {
	q := pageQuery(limit, offset)
	q.Set("generatorPublicKey", generatorPublicKey)
	q.Set("orderBy", orderByHeightDesc)
	return list[Block](getEnvelope[[]Block](ctx, c, "blocks", q, "blocks"))
}

// GetBlocksByDelegate is GetBlocksByGenerator for d's public key.
func (c *Client) GetBlocksByDelegate(ctx context.Context, d Delegate, limit, offset int) ([]Block, error) {
	return c.GetBlocksByGenerator(ctx, d.PublicKey, limit, offset)
}

func (c *Client) GetLastBlock(ctx context.Context) (*Block, error) {
	q := pageQuery(1, 0)
	q.Set("orderBy", orderByHeightDesc)
	return first[Block](getEnvelope[[]Block](ctx, c, "blocks", q, "blocks"))
}
