package tokenswap

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"log"
	"os"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/spltoken"
	"github.com/egaotan/solana-relay/utils"
	"github.com/gagliardetto/solana-go"
)

// Registry is the route provider: it knows the usable token swap pools and
// produces candidate routes for a mint pair.
type Registry struct {
	backend *backend.Backend
	log     *log.Logger
	ctx     context.Context
	pools   []*Pool
}

func NewRegistry(ctx context.Context, be *backend.Backend) *Registry {
	r := &Registry{
		ctx:     ctx,
		backend: be,
		log:     log.Default(),
		pools:   make([]*Pool, 0),
	}
	return r
}

func (r *Registry) Name() string {
	return "tokenswap"
}

func (r *Registry) Start() error {
	r.log = utils.NewLog(config.LogPath, r.Name())
	r.log.Printf("start %s registry, program: %s......", r.Name(), program.TokenSwap)
	if err := r.loadPools(); err != nil {
		return err
	}
	return r.RefreshBalances()
}

func (r *Registry) Stop() error {
	r.log.Printf("stop %s registry......", r.Name())
	return nil
}

func (r *Registry) loadPools() error {
	poolsJson, err := os.ReadFile(config.PoolsFile)
	if err != nil {
		return err
	}
	pools := make([]*Pool, 0)
	if err := json.Unmarshal(poolsJson, &pools); err != nil {
		return err
	}
	r.pools = pools
	r.log.Printf("loaded %d pools", len(r.pools))
	return nil
}

// RefreshBalances re-reads the pool holding accounts so quotes reflect the
// chain.
func (r *Registry) RefreshBalances() error {
	pubkeys := make([]solana.PublicKey, 0, len(r.pools)*2)
	for _, pool := range r.pools {
		pubkeys = append(pubkeys, pool.TokenAAccount, pool.TokenBAccount)
	}
	accounts, err := r.backend.Accounts(pubkeys)
	if err != nil {
		return err
	}
	for i, pool := range r.pools {
		userA, err := spltoken.ParseUser(accounts[i*2])
		if err != nil {
			r.log.Printf("pool(%s) token a err: %s", pool.Address, err)
			continue
		}
		userB, err := spltoken.ParseUser(accounts[i*2+1])
		if err != nil {
			r.log.Printf("pool(%s) token b err: %s", pool.Address, err)
			continue
		}
		pool.AmountA = userA.Amount
		pool.AmountB = userB.Amount
	}
	return nil
}

func (r *Registry) Pools() []*Pool {
	return r.pools
}

// Routes returns the candidate routes for a mint pair: direct pools first,
// then two hop routes through a shared transit mint.
func (r *Registry) Routes(sourceMint solana.PublicKey, destinationMint solana.PublicKey) []PoolsPair {
	routes := make([]PoolsPair, 0)
	for _, pool := range r.pools {
		if pool.HasPair(sourceMint, destinationMint) {
			routes = append(routes, PoolsPair{pool})
		}
	}
	for _, first := range r.pools {
		if !first.HasMint(sourceMint) || first.HasPair(sourceMint, destinationMint) {
			continue
		}
		transit, err := first.OtherMint(sourceMint)
		if err != nil {
			continue
		}
		for _, second := range r.pools {
			if second == first {
				continue
			}
			if second.HasPair(transit, destinationMint) {
				routes = append(routes, PoolsPair{first, second})
			}
		}
	}
	return routes
}

// InstructionSwap builds the single hop token swap instruction against the
// given pool, paying in sourceMint.
func InstructionSwap(pool *Pool, sourceMint solana.PublicKey, userTransferAuthority solana.PublicKey, userSource solana.PublicKey, userDestination solana.PublicKey, amountIn uint64, minimumAmountOut uint64) (solana.Instruction, error) {
	poolSource, poolDestination, err := pool.SwapAccounts(sourceMint)
	if err != nil {
		return nil, err
	}
	authority, _, err := solana.FindProgramAddress([][]byte{pool.Address.Bytes()}, pool.ProgramId)
	if err != nil {
		return nil, err
	}
	return InstructionSwapRaw(pool.ProgramId, pool.Address, authority, userTransferAuthority,
		userSource, poolSource, poolDestination, userDestination,
		pool.PoolTokenMint, pool.FeeAccount, amountIn, minimumAmountOut)
}

// InstructionSwapRaw spells the swap out account by account, for callers that
// already resolved the pool orientation themselves.
func InstructionSwapRaw(programId solana.PublicKey, account solana.PublicKey, authority solana.PublicKey, userTransferAuthority solana.PublicKey, userSource solana.PublicKey, poolSource solana.PublicKey, poolDestination solana.PublicKey, userDestination solana.PublicKey, poolTokenMint solana.PublicKey, feeAccount solana.PublicKey, amountIn uint64, minimumAmountOut uint64) (solana.Instruction, error) {
	data := make([]byte, 17)
	data[0] = 1
	binary.LittleEndian.PutUint64(data[1:], amountIn)
	binary.LittleEndian.PutUint64(data[9:], minimumAmountOut)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: false, IsWritable: false},
			{PublicKey: authority, IsSigner: false, IsWritable: false},
			{PublicKey: userTransferAuthority, IsSigner: true, IsWritable: false},
			{PublicKey: userSource, IsSigner: false, IsWritable: true},
			{PublicKey: poolSource, IsSigner: false, IsWritable: true},
			{PublicKey: poolDestination, IsSigner: false, IsWritable: true},
			{PublicKey: userDestination, IsSigner: false, IsWritable: true},
			{PublicKey: poolTokenMint, IsSigner: false, IsWritable: true},
			{PublicKey: feeAccount, IsSigner: false, IsWritable: true},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: programId,
	}
	return instruction, nil
}
