package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/egaotan/solana-relay/config"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcStub(value string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"context":{"slot":100},"value":` + value + `},"id":1}`))
	}))
}

func stubBackend(t *testing.T, server *httptest.Server) *Backend {
	config.LogPath = t.TempDir() + "/"
	return NewBackend(context.Background(), []*config.Node{{Rpc: server.URL, Usable: true}})
}

func TestAccount_NotYetCreated(t *testing.T) {
	server := rpcStub("null")
	defer server.Close()
	be := stubBackend(t, server)
	pubkey := solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")

	// an account that does not exist yet is a value with no chain state,
	// not an error
	account, err := be.Account(pubkey)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, pubkey, account.PubKey)
	assert.Nil(t, account.Account)

	assert.False(t, be.HasAccount(pubkey))

	balance, err := be.Balance(pubkey)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestAccount_Existing(t *testing.T) {
	server := rpcStub(`{"lamports":2039280,"owner":"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA","data":["","base64"],"executable":false,"rentEpoch":0}`)
	defer server.Close()
	be := stubBackend(t, server)
	pubkey := solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")

	account, err := be.Account(pubkey)
	require.NoError(t, err)
	require.NotNil(t, account.Account)
	assert.Equal(t, uint64(2039280), account.Account.Lamports)
	assert.Equal(t, uint64(100), account.Height)

	assert.True(t, be.HasAccount(pubkey))
}
