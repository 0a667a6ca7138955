package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoPeers is returned when the node reports no healthy peer.
var ErrNoPeers = errors.New("no healthy peers available")

// PeerLister lists the peers known to a node. *api.Client satisfies it.
type PeerLister interface {
	GetPeers(ctx context.Context) ([]api.Peer, error)
}

// PeerListerFunc adapts a function to PeerLister.
type PeerListerFunc func(ctx context.Context) ([]api.Peer, error)

func (f PeerListerFunc) GetPeers(ctx context.Context) ([]api.Peer, error) {
	return f(ctx)
}

// BroadcastError is returned when a peer answers a broadcast with
// success=false.
type BroadcastError struct {
	Peer    string
	Message string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("peer %s rejected transaction: %s", e.Peer, e.Message)
}

// Network picks peers from a node's peer list and submits transactions to
// them.
type Network struct {
	lister     PeerLister
	httpClient *http.Client
	logger     *zap.Logger

	nethash string
	version string
	port    int

	mu     sync.RWMutex
	peers  []api.Peer
	warmed atomic.Bool
}

// Option configures a Network.
type Option func(*Network)

func WithHTTPClient(hc *http.Client) Option {
	return func(n *Network) {
		n.httpClient = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(n *Network) {
		n.logger = logger
	}
}

// New creates a Network that lists peers through lister and sends the given
// protocol headers on broadcast.
func New(lister PeerLister, nethash, version string, port int, opts ...Option) *Network {
	n := &Network{
		lister: lister,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  zap.NewNop(),
		nethash: nethash,
		version: version,
		port:    port,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Warmup fetches the peer list and caches the peers with status OK. An empty
// result leaves the network cold so the next RandomPeer lists again.
func (n *Network) Warmup(ctx context.Context) error {
	peers, err := n.lister.GetPeers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list peers: %w", err)
	}

	healthy := make([]api.Peer, 0, len(peers))
	for _, p := range peers {
		if p.IsOK() {
			healthy = append(healthy, p)
		}
	}

	n.mu.Lock()
	n.peers = healthy
	n.mu.Unlock()
	n.warmed.Store(len(healthy) > 0)

	n.logger.Debug("peer list refreshed", zap.Int("total", len(peers)), zap.Int("healthy", len(healthy)))
	return nil
}

// Peers returns a copy of the cached healthy peers.
func (n *Network) Peers() []api.Peer {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return append([]api.Peer(nil), n.peers...)
}

// RandomPeer returns one cached healthy peer chosen uniformly at random,
// warming up first if needed.
func (n *Network) RandomPeer(ctx context.Context) (*api.Peer, error) {
	if !n.warmed.Load() {
		if err := n.Warmup(ctx); err != nil {
			return nil, err
		}
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.peers) == 0 {
		return nil, ErrNoPeers
	}
	peer := n.peers[rand.Intn(len(n.peers))]
	return &peer, nil
}

// PostTransaction submits tx to peer. It is not retried.
func (n *Network) PostTransaction(ctx context.Context, peer api.Peer, tx *ark.Transaction) error {
	payload, err := json.Marshal(map[string][]*ark.Transaction{"transactions": {tx}})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("http://%s/peer/transactions", peer.Address())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.nethash != "" {
		req.Header.Set(api.HeaderNethash, n.nethash)
	}
	if n.version != "" {
		req.Header.Set(api.HeaderVersion, n.version)
	}
	if n.port != 0 {
		req.Header.Set(api.HeaderPort, strconv.Itoa(n.port))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	result := gjson.ParseBytes(body)
	if !result.Get("success").Bool() {
		message := result.Get("message").String()
		if message == "" {
			message = result.Get("error").String()
		}
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &BroadcastError{Peer: peer.Address(), Message: message}
	}

	n.logger.Debug("transaction accepted", zap.String("peer", peer.Address()), zap.String("id", tx.ID))
	return nil
}
