package relay

import (
	"log"
	"sync"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/feerelayer"
	"github.com/egaotan/solana-relay/relayapi"
	"github.com/egaotan/solana-relay/spltoken"
	"github.com/egaotan/solana-relay/utils"
	"github.com/gagliardetto/solana-go"
)

// Manager owns the current relay context. Refreshes are serialized, readers
// always observe a complete snapshot, the snapshot is replaced, never
// field mutated.
type Manager struct {
	backend     *backend.Backend
	relayClient *relayapi.Client
	owner       solana.PublicKey
	log         *log.Logger
	mutex       sync.Mutex
	current     *Context
}

func NewManager(be *backend.Backend, relayClient *relayapi.Client, owner solana.PublicKey) *Manager {
	m := &Manager{
		backend:     be,
		relayClient: relayClient,
		owner:       owner,
		log:         log.Default(),
	}
	return m
}

func (m *Manager) Start() error {
	m.log = utils.NewLog(config.LogPath, config.RelayLog)
	m.log.Printf("start relay context manager, owner: %s......", m.owner)
	_, err := m.Update()
	return err
}

// Current is the last complete snapshot, nil before the first Update.
func (m *Manager) Current() *Context {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current
}

// Update fetches a fresh snapshot and swaps it in. At most one refresh
// proceeds at a time.
func (m *Manager) Update() (*Context, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ctx, err := m.fetch()
	if err != nil {
		return nil, err
	}
	if m.current != nil && m.current.Equals(ctx) {
		return m.current, nil
	}
	m.current = ctx
	m.log.Printf("relay context updated, fee payer: %s, account created: %v, balance: %d",
		ctx.FeePayer, ctx.RelayAccountStatus.Created, ctx.RelayAccountStatus.Balance)
	return ctx, nil
}

// MarkTransactionAsUsed bumps the local free quota bookkeeping after a
// successful relay submission. The only local mutation path, and it still
// replaces the snapshot rather than writing into it.
func (m *Manager) MarkTransactionAsUsed(transactionFee uint64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.current == nil {
		return
	}
	next := *m.current
	next.UsageStatus.CurrentUsage += 1
	next.UsageStatus.AmountUsed += transactionFee
	m.current = &next
}

func (m *Manager) fetch() (*Context, error) {
	feePayer, err := m.relayClient.FeePayer()
	if err != nil {
		return nil, err
	}
	usage, err := m.relayClient.FreeFeeLimits(m.owner)
	if err != nil {
		return nil, err
	}
	minimumTokenAccountBalance, err := m.backend.GetMinimumBalanceForRentExemption(uint64(spltoken.TokenLayoutSize))
	if err != nil {
		return nil, err
	}
	minimumRelayAccountBalance, err := m.backend.GetMinimumBalanceForRentExemption(0)
	if err != nil {
		return nil, err
	}
	relayAddress, err := feerelayer.UserRelayAddress(m.owner)
	if err != nil {
		return nil, err
	}
	status := AccountNotYetCreated()
	account, err := m.backend.Account(relayAddress)
	if err != nil {
		return nil, err
	}
	if account.Account != nil {
		status = AccountCreated(account.Account.Lamports)
	}
	return &Context{
		MinimumTokenAccountBalance: minimumTokenAccountBalance,
		MinimumRelayAccountBalance: minimumRelayAccountBalance,
		FeePayer:                   feePayer,
		LamportsPerSignature:       m.backend.GetFeeRate(),
		RelayAccountStatus:         status,
		UsageStatus:                usage,
	}, nil
}
