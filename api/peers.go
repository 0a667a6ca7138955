package api

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) GetPeers(ctx context.Context) ([]Peer, error) {
	return list[Peer](getEnvelope[[]Peer](ctx, c, "peers", nil, "peers"))
}

func (c *Client) GetPeer(ctx context.Context, ip string, port int) (*Peer, error) {
	q := url.Values{}
	q.Set("ip", ip)
	q.Set("port", strconv.Itoa(port))
	return getEnvelope[Peer](ctx, c, "peers/get", q, "peer")
}

// GetPeerVersion returns the software version of the configured node.
func (c *Client) GetPeerVersion(ctx context.Context) (*PeerVersion, error) {
	return getEnvelope[PeerVersion](ctx, c, "peers/version", nil, "")
}

// GetSyncStatus reports whether the configured node is still syncing.
func (c *Client) GetSyncStatus(ctx context.Context) (*SyncStatus, error) {
	return getEnvelope[SyncStatus](ctx, c, "loader/status/sync", nil, "")
}
