package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorded struct {
	path   string
	query  url.Values
	header http.Header
}

// fakeNode answers every request with the body registered for its path.
type fakeNode struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	bodies map[string]string
	status int
	last   recorded
}

func newFakeNode(t *testing.T) *fakeNode {
	n := &fakeNode{t: t, bodies: map[string]string{}, status: http.StatusOK}
	n.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.mu.Lock()
		defer n.mu.Unlock()

		n.last = recorded{path: r.URL.Path, query: r.URL.Query(), header: r.Header.Clone()}
		w.WriteHeader(n.status)
		body, ok := n.bodies[r.URL.Path]
		if !ok {
			body = `{"success":false,"error":"not found"}`
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNode) set(path, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bodies[path] = body
}

func (n *fakeNode) lastRequest() recorded {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *fakeNode) client(opts ...Option) *Client {
	c, err := NewClient(n.srv.URL+"/api/", opts...)
	require.NoError(n.t, err)
	return c
}

const accountJSON = `{"success":true,"account":{"address":"AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK","publicKey":"02aa","unconfirmedBalance":"150000000","balance":150000000,"secondSignature":0}}`

func TestNewClient(t *testing.T) {
	c, err := NewClient("https://node1.arknet.cloud/api/")
	require.NoError(t, err)
	require.Equal(t, "https://node1.arknet.cloud/api/", c.BaseURL())
	require.Empty(t, c.Nethash())
	require.Zero(t, c.Port())

	_, err = NewClient("ftp://node1.arknet.cloud/api/")
	require.Error(t, err)
	_, err = NewClient("not a url")
	require.Error(t, err)

	c, err = NewClientFromHost("127.0.0.1", 4001, false)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:4001/api/", c.BaseURL())

	c, err = NewClientFromHost("::1", 4001, true)
	require.NoError(t, err)
	require.Equal(t, "https://[::1]:4001/api/", c.BaseURL())

	require.Equal(t, "[fe80::1]:4002", Peer{IP: "fe80::1", Port: 4002}.Address())
	require.Equal(t, "10.0.0.1:4002", Peer{IP: "10.0.0.1", Port: 4002}.Address())
}

func TestClientOptions(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	shared := &http.Client{}
	c, err := NewClient(srv.URL+"/api/", WithTimeout(50*time.Millisecond), WithHTTPClient(shared))
	require.NoError(t, err)

	_, err = c.GetPeers(context.Background())
	require.True(t, IsTransportError(err))
	require.Zero(t, shared.Timeout)

	c, err = NewClient(srv.URL+"/api/", WithHTTPClient(nil), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.GetPeers(context.Background())
	require.True(t, IsTransportError(err))
}

func TestUpdateConfiguration(t *testing.T) {
	c, err := NewClient("http://a:4001/api/")
	require.NoError(t, err)

	c.UpdateHeader(MainnetNethash, "1.0.1", 4001)
	c.UpdateURL("b.example", 443, true)
	require.Equal(t, "https://b.example:443/api/", c.BaseURL())
	require.Equal(t, MainnetNethash, c.Nethash())
	require.Equal(t, "1.0.1", c.Version())
	require.Equal(t, 4001, c.Port())

	require.NoError(t, c.UpdateBaseURL("http://c:4002"))
	require.Equal(t, "http://c:4002", c.BaseURL())
	require.Equal(t, MainnetNethash, c.Nethash())

	require.Error(t, c.UpdateBaseURL("c:4002"))
	require.Equal(t, "http://c:4002", c.BaseURL())
}

func TestEndpoints(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()
	ctx := context.Background()
	d := Delegate{Username: "genesis_1", Address: "A", PublicKey: "02bb"}

	tests := []struct {
		name  string
		call  func() error
		path  string
		query url.Values
	}{
		{"account", func() error { _, err := c.GetAccount(ctx, "AX"); return err }, "/api/accounts", url.Values{"address": {"AX"}}},
		{"balance", func() error { _, err := c.GetBalance(ctx, "AX"); return err }, "/api/accounts", url.Values{"address": {"AX"}}},
		{"public key", func() error { _, err := c.GetPublicKey(ctx, "AX"); return err }, "/api/accounts", url.Values{"address": {"AX"}}},
		{"vote", func() error { _, err := c.GetVote(ctx, "AX"); return err }, "/api/accounts/delegates", url.Values{"address": {"AX"}}},
		{"block", func() error { _, err := c.GetBlock(ctx, "123"); return err }, "/api/blocks/get", url.Values{"id": {"123"}}},
		{"blocks", func() error { _, err := c.GetBlocks(ctx); return err }, "/api/blocks", url.Values{}},
		{"blocks by generator", func() error { _, err := c.GetBlocksByGenerator(ctx, "02aa", 20, 40); return err }, "/api/blocks",
			url.Values{"generatorPublicKey": {"02aa"}, "limit": {"20"}, "offset": {"40"}, "orderBy": {"height:desc"}}},
		{"blocks by delegate", func() error { _, err := c.GetBlocksByDelegate(ctx, d, 5, 0); return err }, "/api/blocks",
			url.Values{"generatorPublicKey": {"02bb"}, "limit": {"5"}, "offset": {"0"}, "orderBy": {"height:desc"}}},
		{"last block", func() error { _, err := c.GetLastBlock(ctx); return err }, "/api/blocks",
			url.Values{"limit": {"1"}, "offset": {"0"}, "orderBy": {"height:desc"}}},
		{"delegate", func() error { _, err := c.GetDelegate(ctx, "genesis_1"); return err }, "/api/delegates/get", url.Values{"username": {"genesis_1"}}},
		{"delegates", func() error { _, err := c.GetDelegates(ctx); return err }, "/api/delegates", url.Values{}},
		{"standby delegates", func() error { _, err := c.GetStandbyDelegates(ctx); return err }, "/api/delegates",
			url.Values{"limit": {"51"}, "offset": {"51"}, "orderBy": {"rate:asc"}}},
		{"delegates page", func() error { _, err := c.GetDelegatesPage(ctx, 10, 20); return err }, "/api/delegates",
			url.Values{"limit": {"10"}, "offset": {"20"}, "orderBy": {"rate:asc"}}},
		{"voters", func() error { _, err := c.GetVoters(ctx, "02aa"); return err }, "/api/delegates/voters", url.Values{"publicKey": {"02aa"}}},
		{"voters of", func() error { _, err := c.GetVotersOf(ctx, d); return err }, "/api/delegates/voters", url.Values{"publicKey": {"02bb"}}},
		{"peers", func() error { _, err := c.GetPeers(ctx); return err }, "/api/peers", url.Values{}},
		{"peer", func() error { _, err := c.GetPeer(ctx, "10.0.0.1", 4001); return err }, "/api/peers/get", url.Values{"ip": {"10.0.0.1"}, "port": {"4001"}}},
		{"peer version", func() error { _, err := c.GetPeerVersion(ctx); return err }, "/api/peers/version", url.Values{}},
		{"sync status", func() error { _, err := c.GetSyncStatus(ctx); return err }, "/api/loader/status/sync", url.Values{}},
		{"transactions", func() error { _, err := c.GetTransactions(ctx); return err }, "/api/transactions", url.Values{}},
		{"transactions page", func() error { _, err := c.GetTransactionsPage(ctx, 10, 30); return err }, "/api/transactions",
			url.Values{"limit": {"10"}, "offset": {"30"}}},
		{"transaction", func() error { _, err := c.GetTransaction(ctx, "abc"); return err }, "/api/transactions/get", url.Values{"id": {"abc"}}},
		{"sent", func() error { _, err := c.GetSentTransactions(ctx, "AX"); return err }, "/api/transactions", url.Values{"senderId": {"AX"}}},
		{"received", func() error { _, err := c.GetReceivedTransactions(ctx, "AX"); return err }, "/api/transactions", url.Values{"recipientId": {"AX"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			got := node.lastRequest()
			require.Equal(t, tt.path, got.path)
			require.Equal(t, tt.query, got.query)
		})
	}
}

func TestBaseURLWithoutTrailingSlash(t *testing.T) {
	node := newFakeNode(t)
	c, err := NewClient(node.srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.GetPeers(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/peers", node.lastRequest().path)
}

func TestHeaders(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()

	_, err := c.GetPeers(context.Background())
	require.NoError(t, err)
	h := node.lastRequest().header
	require.Empty(t, h.Get("nethash"))
	require.Empty(t, h.Get("port"))

	c.UpdateHeader(DevnetNethash, "1.0.1", 4002)
	_, err = c.GetPeers(context.Background())
	require.NoError(t, err)

	h = node.lastRequest().header
	require.Equal(t, DevnetNethash, h.Get("nethash"))
	require.Equal(t, "1.0.1", h.Get("version"))
	require.Equal(t, "4002", h.Get("port"))
	require.Empty(t, h.Get(DevnetNethash))
}

func TestGetAccount(t *testing.T) {
	node := newFakeNode(t)
	node.set("/api/accounts", accountJSON)
	c := node.client()
	ctx := context.Background()

	account, err := c.GetAccount(ctx, "AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK")
	require.NoError(t, err)
	require.NotNil(t, account)
	require.Equal(t, Arktoshi(150000000), account.Balance)
	require.Equal(t, Arktoshi(150000000), account.UnconfirmedBalance)
	require.Equal(t, 1.5, account.DisplayBalance())
	require.False(t, account.HasSecondSignature())
	require.Nil(t, account.UnconfirmedSignature)
	require.Nil(t, account.SecondPublicKey)

	balance, err := c.GetBalance(ctx, "AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK")
	require.NoError(t, err)
	require.Equal(t, 1.5, *balance)

	publicKey, err := c.GetPublicKey(ctx, "AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK")
	require.NoError(t, err)
	require.Equal(t, "02aa", *publicKey)
}

func TestAbsentResults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"not found", `{"success":false,"error":"Account not found"}`},
		{"null payload", `{"success":true,"account":null}`},
		{"missing payload", `{"success":true}`},
		{"malformed json", `{"success":true,"account":`},
		{"not json", `<html>bad gateway</html>`},
		{"missing required field", `{"success":true,"account":{"publicKey":"02aa"}}`},
		{"non numeric balance", `{"success":true,"account":{"address":"AX","balance":"lots"}}`},
		{"fractional balance", `{"success":true,"account":{"address":"AX","balance":"1.5"}}`},
		{"out of range string balance", `{"success":true,"account":{"address":"AX","balance":"18446744073709551617"}}`},
		{"out of range numeric balance", `{"success":true,"account":{"address":"AX","balance":1e30}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := newFakeNode(t)
			node.set("/api/accounts", tt.body)
			c := node.client()

			account, err := c.GetAccount(ctx, "AX")
			require.NoError(t, err)
			require.Nil(t, account)

			balance, err := c.GetBalance(ctx, "AX")
			require.NoError(t, err)
			require.Nil(t, balance)
		})
	}
}

func TestGetVote(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()
	ctx := context.Background()

	node.set("/api/accounts/delegates", `{"success":true,"delegates":[]}`)
	vote, err := c.GetVote(ctx, "AX")
	require.NoError(t, err)
	require.Nil(t, vote)

	node.set("/api/accounts/delegates", `{"success":true,"delegates":[
		{"username":"genesis_1","address":"AY","publicKey":"02bb","vote":"1000","producedblocks":10,"missedblocks":1,"rate":3,"approval":1.2,"productivity":99.5},
		{"username":"genesis_2","address":"AZ","publicKey":"02cc"}]}`)
	vote, err = c.GetVote(ctx, "AX")
	require.NoError(t, err)
	require.Equal(t, "genesis_1", vote.Username)
	require.Equal(t, Arktoshi(1000), vote.Vote)
	require.Equal(t, int64(1), vote.MissedBlocks)
	require.True(t, vote.IsForging())

	replaced := vote.WithMissedBlocks(5)
	require.Equal(t, int64(5), replaced.MissedBlocks)
	require.Equal(t, int64(1), vote.MissedBlocks)
}

func TestCollections(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()
	ctx := context.Background()

	node.set("/api/blocks", `{"success":true,"blocks":[
		{"id":"2","height":2,"previousBlock":"1","totalFee":"10000000","reward":200000000,"generatorPublicKey":"02aa"},
		{"id":"1","height":1}]}`)
	blocks, err := c.GetBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, blocks[1].ID, blocks[0].PreviousBlock)
	require.Equal(t, Arktoshi(200000000), blocks[0].Reward)

	last, err := c.GetLastBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, "2", last.ID)

	node.set("/api/blocks", `{"success":true,"blocks":[]}`)
	blocks, err = c.GetBlocks(ctx)
	require.NoError(t, err)
	require.Nil(t, blocks)
	last, err = c.GetLastBlock(ctx)
	require.NoError(t, err)
	require.Nil(t, last)

	node.set("/api/delegates/voters", `{"success":true,"accounts":[{"username":null,"address":"AX","publicKey":"02aa","balance":"250000000"}]}`)
	voters, err := c.GetVoters(ctx, "02bb")
	require.NoError(t, err)
	require.Len(t, voters, 1)
	require.Nil(t, voters[0].Username)
	require.Equal(t, 2.5, voters[0].DisplayBalance())

	node.set("/api/transactions", `{"success":true,"transactions":[{"id":"t1","blockid":"b1","type":3,"amount":0,"fee":100000000,"vendorField":"hi"},{"id":"t2","type":42}]}`)
	txs, err := c.GetSentTransactions(ctx, "AX")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, TypeVote, txs[0].Type)
	require.Equal(t, "b1", txs[0].BlockID)
	require.Equal(t, 1.0, txs[0].DisplayFee())
	require.Equal(t, "hi", *txs[0].VendorField)
	require.Nil(t, txs[1].VendorField)
	require.Equal(t, "unknown(42)", txs[1].Type.String())

	// One invalid element makes the whole collection absent.
	node.set("/api/peers", `{"success":true,"peers":[{"ip":"10.0.0.1","port":4001,"status":"OK"},{"status":"OK"}]}`)
	peers, err := c.GetPeers(ctx)
	require.NoError(t, err)
	require.Nil(t, peers)
}

func TestTopLevelPayloads(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()
	ctx := context.Background()

	node.set("/api/peers/version", `{"success":true,"version":"1.0.1","build":""}`)
	v, err := c.GetPeerVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.1", v.Version)

	node.set("/api/loader/status/sync", `{"success":true,"syncing":false,"blocks":-3,"height":3035561,"id":"123"}`)
	s, err := c.GetSyncStatus(ctx)
	require.NoError(t, err)
	require.False(t, s.Syncing)
	require.Equal(t, int64(3035561), s.Height)

	node.set("/api/peers/get", `{"success":true,"peer":{"ip":"10.0.0.1","port":4001,"status":"OK","delay":12}}`)
	p, err := c.GetPeer(ctx, "10.0.0.1", 4001)
	require.NoError(t, err)
	require.True(t, p.IsOK())
	require.Equal(t, "10.0.0.1:4001", p.Address())
	require.Equal(t, 50, p.WithDelay(50).Delay)
	require.Equal(t, 12, p.Delay)
}

func TestTransportErrors(t *testing.T) {
	node := newFakeNode(t)
	c := node.client()
	ctx := context.Background()

	node.mu.Lock()
	node.status = http.StatusBadGateway
	node.mu.Unlock()
	node.set("/api/accounts", `<html>bad gateway</html>`)

	account, err := c.GetAccount(ctx, "AX")
	require.Nil(t, account)
	require.True(t, IsTransportError(err))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, http.StatusBadGateway, te.StatusCode)

	// A non-2xx response that still carries an envelope is decoded.
	node.set("/api/accounts", `{"success":false,"error":"Account not found"}`)
	account, err = c.GetAccount(ctx, "AX")
	require.NoError(t, err)
	require.Nil(t, account)

	node.srv.Close()
	_, err = c.GetPeers(ctx)
	require.True(t, IsTransportError(err))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL+"/api/", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetPeers(context.Background())
	require.True(t, IsTransportError(err))

	c, err = NewClient(srv.URL + "/api/")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GetPeers(ctx)
	require.True(t, IsTransportError(err))
}

func TestReconfigureMidFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(`{"success":true,"peers":[{"ip":"1.1.1.1","port":4001,"status":"OK"}]}`))
	}))
	defer slow.Close()

	other := newFakeNode(t)
	other.set("/api/peers", `{"success":true,"peers":[{"ip":"2.2.2.2","port":4001,"status":"OK"}]}`)

	c, err := NewClient(slow.URL + "/api/")
	require.NoError(t, err)

	ch := Async(context.Background(), c.GetPeers)
	<-started

	require.NoError(t, c.UpdateBaseURL(other.srv.URL+"/api/"))
	close(release)

	res := <-ch
	require.NoError(t, res.Err)
	require.Len(t, res.Value, 1)
	require.Equal(t, "1.1.1.1", res.Value[0].IP)

	peers, err := c.GetPeers(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2.2.2.2", peers[0].IP)
}

func TestConcurrentReconfiguration(t *testing.T) {
	c, err := NewClient("http://a:4001/api/")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					c.UpdateHeader(MainnetNethash, "1.0.1", 4001)
				} else {
					c.UpdateHeader(DevnetNethash, "2.0.0", 4002)
				}
			}
		}(i)
	}

	for j := 0; j < 200; j++ {
		h := c.Headers()
		switch h.Get(HeaderNethash) {
		case MainnetNethash:
			require.Equal(t, "4001", h.Get(HeaderPort))
		case DevnetNethash:
			require.Equal(t, "4002", h.Get(HeaderPort))
		}
	}
	wg.Wait()
}
