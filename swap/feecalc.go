package swap

import (
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/relay"
	"github.com/gagliardetto/solana-go"
)

// FeeCalculator prices the network cost of a swap before it is built, so the
// caller can decide on a top up first.
type FeeCalculator struct {
	finder *DestinationFinder
}

func NewFeeCalculator(finder *DestinationFinder) *FeeCalculator {
	return &FeeCalculator{finder: finder}
}

// SwappingNetworkFees computes the expected network fee of a swap. The relay
// and the user always sign. A native source or destination each add a
// signature for the throwaway wrapped account. A destination that must be
// created adds its rent to the account balances component. The two
// transaction path of a two hop native paying swap without a destination
// address adds two more signatures.
func (c *FeeCalculator) SwappingNetworkFees(relayContext *relay.Context, owner solana.PublicKey, swapPoolsCount int, sourceMint solana.PublicKey, destinationMint solana.PublicKey, destinationAddress *solana.PublicKey) (fee.FeeAmount, error) {
	if relayContext == nil {
		return fee.FeeAmount{}, ErrRelayContextMissing
	}
	signatures := uint64(2)
	if sourceMint == program.WrappedSOL {
		signatures++
	}
	if destinationMint == program.WrappedSOL {
		signatures++
	}
	if swapPoolsCount == 2 && sourceMint == program.WrappedSOL && destinationAddress == nil {
		signatures += 2
	}
	amount := fee.FeeAmount{Transaction: signatures * relayContext.LamportsPerSignature}
	if destinationMint != program.WrappedSOL {
		found, err := c.finder.FindRealDestination(owner, destinationMint, destinationAddress)
		if err != nil {
			return fee.FeeAmount{}, err
		}
		if found.NeedsCreation {
			amount.AddAccountBalances(relayContext.MinimumTokenAccountBalance)
		}
	}
	return amount, nil
}
