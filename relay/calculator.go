package relay

import (
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

// ExpectedTopUpFee is what a top up transaction itself will cost the user:
// rent for the temporary token account the swap pays through, rent for the
// relay deposit account if it does not exist yet, and two signatures once the
// free quota is gone.
func ExpectedTopUpFee(ctx *Context) uint64 {
	expected := ctx.MinimumTokenAccountBalance
	if !ctx.RelayAccountStatus.Created {
		expected += ctx.MinimumRelayAccountBalance
	}
	if !ctx.UsageStatus.IsFreeTransactionFeeAvailable(2 * ctx.LamportsPerSignature) {
		expected += 2 * ctx.LamportsPerSignature
	}
	return expected
}

// NeededTopUpAmount is how much must land in the relay deposit account so
// that, after the relay deducts expectedFee and any signature cost, the
// deposit floor still holds. All subtraction clamps at zero.
func NeededTopUpAmount(ctx *Context, expectedFee fee.FeeAmount, payingTokenMint solana.PublicKey) fee.FeeAmount {
	// paying in the native asset needs no swap, the relay deposit floor is
	// not involved
	if payingTokenMint == program.WrappedSOL {
		return fee.FeeAmount{Transaction: 0, AccountBalances: expectedFee.AccountBalances}
	}
	needed := expectedFee
	topUpNetworkFee := 2 * ctx.LamportsPerSignature
	if !ctx.UsageStatus.IsFreeTransactionFeeAvailable(topUpNetworkFee) {
		needed.Transaction += topUpNetworkFee
	}
	if !ctx.RelayAccountStatus.Created {
		// the first top up funds the deposit floor itself
		needed.Transaction += ctx.MinimumRelayAccountBalance
	} else {
		balance := ctx.RelayAccountStatus.Balance
		floor := ctx.MinimumRelayAccountBalance
		if balance < floor {
			needed.Transaction += floor - balance
		} else {
			available := balance - floor
			if available >= needed.Transaction {
				available -= needed.Transaction
				needed.Transaction = 0
				if available >= needed.AccountBalances {
					needed.AccountBalances = 0
				} else {
					needed.AccountBalances -= available
				}
			} else {
				needed.Transaction -= available
			}
		}
	}
	// a dust top up costs more than it is worth, round it up
	if total := needed.Total(); total > 0 && total < config.MinimumTopUpAmount {
		needed.Transaction += config.MinimumTopUpAmount - total
	}
	return needed
}
