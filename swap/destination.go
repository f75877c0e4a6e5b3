package swap

import (
	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

// ChainQuery is the account lookup the swap composer needs.
type ChainQuery interface {
	Account(pubkey solana.PublicKey) (*backend.Account, error)
}

type TokenAccount struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
}

// FoundDestination is the resolved receive side of a swap. Owner is set only
// when the caller handed a wallet address instead of a token account, the
// builder then spends into a throwaway account and unwraps into the wallet.
type FoundDestination struct {
	Destination   TokenAccount
	Owner         *solana.PublicKey
	NeedsCreation bool
}

type DestinationFinder struct {
	chain ChainQuery
}

func NewDestinationFinder(chain ChainQuery) *DestinationFinder {
	return &DestinationFinder{chain: chain}
}

// FindRealDestination resolves where the swap output lands. A native mint
// always resolves to the owner's wallet, an explicit address is trusted as is,
// otherwise the owner's associated token account is derived and probed on
// chain.
func (f *DestinationFinder) FindRealDestination(owner solana.PublicKey, mint solana.PublicKey, destinationAddress *solana.PublicKey) (*FoundDestination, error) {
	if mint == program.WrappedSOL {
		return &FoundDestination{
			Destination:   TokenAccount{Address: owner, Mint: mint},
			Owner:         &owner,
			NeedsCreation: true,
		}, nil
	}
	if destinationAddress != nil {
		return &FoundDestination{
			Destination:   TokenAccount{Address: *destinationAddress, Mint: mint},
			NeedsCreation: false,
		}, nil
	}
	associated, err := backend.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	account, err := f.chain.Account(associated)
	if err != nil {
		return nil, err
	}
	needsCreation := account.Account == nil || account.Account.Owner != program.Token
	return &FoundDestination{
		Destination:   TokenAccount{Address: associated, Mint: mint},
		NeedsCreation: needsCreation,
	}, nil
}
