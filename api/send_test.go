package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/stretchr/testify/require"
)

type mockSigner struct {
	CreateTransactionFunc func(recipientID string, amount int64, vendorField, passphrase, secondPassphrase string) (*ark.Transaction, error)
	CreateVoteFunc        func(votes []string, passphrase, secondPassphrase string) (*ark.Transaction, error)
}

func (m *mockSigner) CreateTransaction(recipientID string, amount int64, vendorField, passphrase, secondPassphrase string) (*ark.Transaction, error) {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(recipientID, amount, vendorField, passphrase, secondPassphrase)
	}
	return &ark.Transaction{ID: "tx"}, nil
}

func (m *mockSigner) CreateVote(votes []string, passphrase, secondPassphrase string) (*ark.Transaction, error) {
	if m.CreateVoteFunc != nil {
		return m.CreateVoteFunc(votes, passphrase, secondPassphrase)
	}
	return &ark.Transaction{ID: "vote"}, nil
}

type mockBroadcaster struct {
	RandomPeerFunc      func(ctx context.Context) (*Peer, error)
	PostTransactionFunc func(ctx context.Context, peer Peer, tx *ark.Transaction) error
}

func (m *mockBroadcaster) RandomPeer(ctx context.Context) (*Peer, error) {
	if m.RandomPeerFunc != nil {
		return m.RandomPeerFunc(ctx)
	}
	return &Peer{IP: "10.0.0.1", Port: 4001, Status: "OK"}, nil
}

func (m *mockBroadcaster) PostTransaction(ctx context.Context, peer Peer, tx *ark.Transaction) error {
	if m.PostTransactionFunc != nil {
		return m.PostTransactionFunc(ctx, peer, tx)
	}
	return nil
}

func newSendClient(t *testing.T, s Signer, b Broadcaster) *Client {
	c, err := NewClient("http://127.0.0.1:4001/api/", WithSigner(s), WithNetwork(b))
	require.NoError(t, err)
	return c
}

func TestSendVote(t *testing.T) {
	var gotVotes []string
	var gotSecond string
	var posted *ark.Transaction

	signer := &mockSigner{
		CreateVoteFunc: func(votes []string, passphrase, secondPassphrase string) (*ark.Transaction, error) {
			gotVotes = votes
			gotSecond = secondPassphrase
			return &ark.Transaction{ID: "v1", Asset: ark.Asset{Votes: votes}}, nil
		},
	}
	network := &mockBroadcaster{
		PostTransactionFunc: func(ctx context.Context, peer Peer, tx *ark.Transaction) error {
			posted = tx
			return nil
		},
	}
	c := newSendClient(t, signer, network)
	d := Delegate{Username: "genesis_1", Address: "A", PublicKey: "02bb"}

	tx, err := c.SendVote(context.Background(), d, "alpha", "")
	require.NoError(t, err)
	require.Equal(t, []string{"+02bb"}, gotVotes)
	require.Empty(t, gotSecond)
	require.Equal(t, "v1", tx.ID)
	require.Same(t, tx, posted)

	_, err = c.SendUnvote(context.Background(), d, "alpha", "beta")
	require.NoError(t, err)
	require.Equal(t, []string{"-02bb"}, gotVotes)
	require.Equal(t, "beta", gotSecond)
}

func TestSendTransaction(t *testing.T) {
	var got struct {
		recipient, vendorField string
		amount                 int64
	}
	signer := &mockSigner{
		CreateTransactionFunc: func(recipientID string, amount int64, vendorField, passphrase, secondPassphrase string) (*ark.Transaction, error) {
			got.recipient, got.amount, got.vendorField = recipientID, amount, vendorField
			return &ark.Transaction{ID: "t1"}, nil
		},
	}
	c := newSendClient(t, signer, &mockBroadcaster{})

	tx, err := c.SendTransaction(context.Background(), "AX", 150000000, "alpha", "", "memo")
	require.NoError(t, err)
	require.Equal(t, "t1", tx.ID)
	require.Equal(t, "AX", got.recipient)
	require.Equal(t, int64(150000000), got.amount)
	require.Equal(t, "memo", got.vendorField)
}

func TestSendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	d := Delegate{PublicKey: "02bb"}

	c, err := NewClient("http://127.0.0.1:4001/api/")
	require.NoError(t, err)
	_, err = c.SendTransaction(ctx, "AX", 1, "alpha", "", "")
	require.ErrorIs(t, err, ErrNoSigner)
	_, err = c.SendVote(ctx, d, "alpha", "")
	require.ErrorIs(t, err, ErrNoSigner)

	c, err = NewClient("http://127.0.0.1:4001/api/", WithSigner(&mockSigner{}))
	require.NoError(t, err)
	_, err = c.SendVote(ctx, d, "alpha", "")
	require.ErrorIs(t, err, ErrNoBroadcaster)

	c = newSendClient(t, &mockSigner{
		CreateVoteFunc: func(votes []string, passphrase, secondPassphrase string) (*ark.Transaction, error) {
			return nil, boom
		},
	}, &mockBroadcaster{})
	_, err = c.SendVote(ctx, d, "alpha", "")
	require.ErrorIs(t, err, boom)

	c = newSendClient(t, &mockSigner{}, &mockBroadcaster{
		RandomPeerFunc: func(ctx context.Context) (*Peer, error) {
			return nil, boom
		},
	})
	_, err = c.SendTransaction(ctx, "AX", 1, "alpha", "", "")
	require.ErrorIs(t, err, boom)

	posts := 0
	c = newSendClient(t, &mockSigner{}, &mockBroadcaster{
		PostTransactionFunc: func(ctx context.Context, peer Peer, tx *ark.Transaction) error {
			posts++
			return boom
		},
	})
	_, err = c.SendTransaction(ctx, "AX", 1, "alpha", "", "")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, posts)
}

func TestGetTicker(t *testing.T) {
	var query, nethash string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("tsyms") + "|" + r.URL.Query().Get("fsym")
		nethash = r.Header.Get(HeaderNethash)
		w.Write([]byte(`{"USD":0.51,"EUR":0.47}`))
	}))
	defer srv.Close()

	c, err := NewClient("http://127.0.0.1:4001/api/", WithTickerURL(srv.URL+"/data/price"))
	require.NoError(t, err)
	c.UpdateHeader(MainnetNethash, "1.0.1", 4001)

	ticker, err := c.GetTicker(context.Background())
	require.NoError(t, err)
	rate, ok := ticker.Rate("EUR")
	require.True(t, ok)
	require.Equal(t, "0.47", rate.String())

	require.Equal(t, strings.Join(TickerCurrencies, ",")+"|ARK", query)
	require.Empty(t, nethash)
}

func TestAsync(t *testing.T) {
	ch := Async(context.Background(), func(ctx context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})
	res := <-ch
	require.NoError(t, res.Err)
	require.Equal(t, 42, res.Value)

	_, open := <-ch
	require.False(t, open)
}
