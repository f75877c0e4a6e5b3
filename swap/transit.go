package swap

import (
	"fmt"

	"github.com/egaotan/solana-relay/feerelayer"
	"github.com/egaotan/solana-relay/spltoken"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
)

// TransitAccount is the intermediate holding account of a two hop swap. It is
// created right before the swap and closed right after, it never outlives the
// transaction.
type TransitAccount struct {
	Mint          solana.PublicKey
	Address       solana.PublicKey
	NeedsCreation bool
}

type TransitTokenAccountManager struct {
	chain ChainQuery
}

func NewTransitTokenAccountManager(chain ChainQuery) *TransitTokenAccountManager {
	return &TransitTokenAccountManager{chain: chain}
}

// Resolve derives the transit account for a route. Single hop routes have no
// transit, the result is nil. For two hop routes the address is derived from
// the owner and the intermediate mint, then probed on chain so the builder
// knows whether a create instruction is needed.
func (m *TransitTokenAccountManager) Resolve(owner solana.PublicKey, route tokenswap.PoolsPair, sourceMint solana.PublicKey) (*TransitAccount, error) {
	if len(route) < 2 {
		return nil, nil
	}
	mint, err := route.TransitMint(sourceMint)
	if err != nil {
		return nil, ErrTransitTokenMintNotFound
	}
	address, err := feerelayer.TransitTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	account, err := m.chain.Account(address)
	if err != nil {
		return nil, err
	}
	if account.Account == nil {
		return &TransitAccount{Mint: mint, Address: address, NeedsCreation: true}, nil
	}
	user, err := spltoken.ParseUser(account)
	if err != nil {
		return nil, err
	}
	if user.Mint != mint {
		return nil, fmt.Errorf("transit account(%s) holds mint %s, expected %s", address, user.Mint, mint)
	}
	return &TransitAccount{Mint: mint, Address: address, NeedsCreation: false}, nil
}
