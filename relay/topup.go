package relay

import (
	"errors"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/feerelayer"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
)

var (
	ErrContextMissing     = errors.New("relay context is not loaded")
	ErrInvalidTopUpAmount = errors.New("top up amount is invalid")
	ErrNoTopUpRoute       = errors.New("no pool swaps the paying token into the native asset")
)

// TopUpInput is one deposit request. Paying in the native asset needs no
// pool, any other mint swaps through Pool into the deposit account.
type TopUpInput struct {
	Owner         solana.PrivateKey
	SourceAddress solana.PublicKey
	SourceMint    solana.PublicKey
	Pool          *tokenswap.Pool
	AmountIn      uint64
	Slippage      float64
}

// BuildTopUp composes a transaction that lands AmountIn in the user's relay
// deposit account, fee payer fronted. The first top up also funds the deposit
// account's own rent floor.
func BuildTopUp(be *backend.Backend, ctx *Context, input TopUpInput) (*backend.PreparedTransaction, error) {
	if ctx == nil {
		return nil, ErrContextMissing
	}
	if input.AmountIn == 0 {
		return nil, ErrInvalidTopUpAmount
	}
	if input.Slippage < 0 || input.Slippage >= 1 {
		return nil, ErrInvalidTopUpAmount
	}
	owner := input.Owner.PublicKey()
	relayAddress, err := feerelayer.UserRelayAddress(owner)
	if err != nil {
		return nil, err
	}

	expectedFee := fee.FeeAmount{}
	if !ctx.RelayAccountStatus.Created {
		expectedFee.AddAccountBalances(ctx.MinimumRelayAccountBalance)
	}
	topUpNetworkFee := 2 * ctx.LamportsPerSignature
	if !ctx.UsageStatus.IsFreeTransactionFeeAvailable(topUpNetworkFee) {
		expectedFee.AddTransaction(topUpNetworkFee)
	}

	var topUpIn solana.Instruction
	if input.SourceMint == program.WrappedSOL {
		topUpIn, err = feerelayer.InstructionTransferSOL(owner, relayAddress, input.AmountIn)
		if err != nil {
			return nil, err
		}
	} else {
		if input.Pool == nil || !input.Pool.HasPair(input.SourceMint, program.WrappedSOL) {
			return nil, ErrNoTopUpRoute
		}
		estimated, err := input.Pool.EstimateAmountOut(input.SourceMint, input.AmountIn)
		if err != nil {
			return nil, err
		}
		authority, _, err := solana.FindProgramAddress([][]byte{input.Pool.Address.Bytes()}, input.Pool.ProgramId)
		if err != nil {
			return nil, err
		}
		poolSource, poolDestination, err := input.Pool.SwapAccounts(input.SourceMint)
		if err != nil {
			return nil, err
		}
		topUpIn, err = feerelayer.InstructionTopUpWithSwap(ctx.FeePayer, owner, relayAddress, input.SourceAddress,
			&feerelayer.SwapAccounts{
				Program:         input.Pool.ProgramId,
				Account:         input.Pool.Address,
				Authority:       authority,
				PoolSource:      poolSource,
				PoolDestination: poolDestination,
				PoolTokenMint:   input.Pool.PoolTokenMint,
				FeeAccount:      input.Pool.FeeAccount,
			},
			input.AmountIn, tokenswap.MinimumAmountOut(estimated, input.Slippage))
		if err != nil {
			return nil, err
		}
		// the swap pays through a relay held token account, its rent rides
		// on the fee payer until settlement
		expectedFee.AddAccountBalances(ctx.MinimumTokenAccountBalance)
	}

	return be.Prepare([]solana.Instruction{topUpIn}, []solana.PrivateKey{input.Owner}, ctx.FeePayer, expectedFee)
}
