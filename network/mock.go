package network

import (
	"context"

	"github.com/chinmay1088/arkgo/api"
)

type MockPeerLister struct {
	GetPeersFunc func(ctx context.Context) ([]api.Peer, error)
}

func (m *MockPeerLister) GetPeers(ctx context.Context) ([]api.Peer, error) {
	if m.GetPeersFunc != nil {
		return m.GetPeersFunc(ctx)
	}

	return nil, nil
}
