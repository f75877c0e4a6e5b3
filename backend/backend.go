package backend

import (
	"context"
	"sync"

	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"log"
)

type Backend struct {
	logger               *log.Logger
	txLogger             *log.Logger
	rpcClient            *rpc.Client
	clients              []*rpc.Client
	ctx                  context.Context
	wg                   sync.WaitGroup
	wallets              []*Wallet
	player               solana.PublicKey
	lock                 int32
	cachedBlockHash      solana.Hash
	lamportsPerSignature uint64
}

func NewBackend(ctx context.Context, nodes []*config.Node) *Backend {
	rpcClient := rpc.New(nodes[0].Rpc)
	clients := make([]*rpc.Client, 0, len(nodes))
	for _, node := range nodes {
		clients = append(clients, rpc.New(node.Rpc))
	}
	backend := &Backend{
		rpcClient: rpcClient,
		clients:   clients,
		ctx:       ctx,
		logger:    utils.NewLog(config.LogPath, config.BackendLog),
		txLogger:  utils.NewLog(config.LogPath, config.SentTxHash),
	}
	return backend
}

func (backend *Backend) Start() {
	backend.wg.Add(1)
	go backend.CacheRecentBlockHash()
}

func (backend *Backend) Stop() {
	backend.wg.Wait()
}
